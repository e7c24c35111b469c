package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thai-address-parser/internal/fuzzy"
	"github.com/thai-address-parser/internal/tokenizer"
	"gopkg.in/yaml.v3"
)

// Gazetteer sources
const (
	SourceEmbedded = "embedded"
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourceMongo    = "mongo"
)

// Classifiers
const (
	ClassifierCRF       = "crf"
	ClassifierLibpostal = "libpostal"
)

// GazetteerCfg nguồn dữ liệu hành chính
type GazetteerCfg struct {
	Source  string `yaml:"source" json:"source"`   // embedded | csv | sqlite | mongo
	Path    string `yaml:"path" json:"path"`       // file CSV hoặc SQLite
	Version string `yaml:"version" json:"version"` // lọc gazetteer_version khi đọc từ MongoDB
}

// ParserCfg cấu hình của pipeline parse
type ParserCfg struct {
	TokenizerEngine string       `yaml:"tokenizer_engine" json:"tokenizer_engine"`
	Classifier      string       `yaml:"classifier" json:"classifier"` // crf | libpostal
	ModelPath       string       `yaml:"model_path" json:"model_path"`
	Scorer          string       `yaml:"scorer" json:"scorer"` // wratio | jaro_winkler
	Gazetteer       GazetteerCfg `yaml:"gazetteer" json:"gazetteer"`
	Boilerplate     []string     `yaml:"boilerplate" json:"boilerplate"`         // cộng thêm vào rules nhúng sẵn
	ExtraStopwords  []string     `yaml:"extra_stopwords" json:"extra_stopwords"` // cộng thêm vào lexicon
	BatchWorkers    int          `yaml:"batch_workers" json:"batch_workers"`
}

// Default cấu hình mặc định, chạy được không cần file
func Default() ParserCfg {
	return ParserCfg{
		TokenizerEngine: tokenizer.DefaultEngine,
		Classifier:      ClassifierCRF,
		ModelPath:       "models/crf_model.json",
		Scorer:          fuzzy.ScorerWRatio,
		Gazetteer:       GazetteerCfg{Source: SourceEmbedded},
		BatchWorkers:    4,
	}
}

// Load đọc file YAML đè lên Default, path rỗng là chỉ dùng Default.
// Biến môi trường được áp dụng sau cùng.
func Load(path string) (ParserCfg, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("lỗi đọc config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("lỗi parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ENV overrides
func applyEnv(cfg *ParserCfg) {
	if v := os.Getenv("TOKENIZER_ENGINE"); v != "" {
		cfg.TokenizerEngine = v
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		cfg.ModelPath = v
	}
	if v := os.Getenv("GAZETTEER_SOURCE"); v != "" {
		cfg.Gazetteer.Source = v
	}
	if v := os.Getenv("GAZETTEER_PATH"); v != "" {
		cfg.Gazetteer.Path = v
	}
	switch os.Getenv("USE_LIBPOSTAL") {
	case "0":
		cfg.Classifier = ClassifierCRF
	case "1":
		cfg.Classifier = ClassifierLibpostal
	}
	if n, err := strconv.Atoi(os.Getenv("BATCH_WORKERS")); err == nil && n > 0 {
		cfg.BatchWorkers = n
	}
}

// Validate kiểm tra các giá trị liệt kê
func (c ParserCfg) Validate() error {
	switch c.Classifier {
	case ClassifierCRF, ClassifierLibpostal:
	default:
		return fmt.Errorf("classifier không hợp lệ: %q", c.Classifier)
	}
	switch strings.ToLower(c.Gazetteer.Source) {
	case SourceEmbedded, SourceMongo:
	case SourceCSV, SourceSQLite:
		if c.Gazetteer.Path == "" {
			return fmt.Errorf("gazetteer source %q cần path", c.Gazetteer.Source)
		}
	default:
		return fmt.Errorf("gazetteer source không hợp lệ: %q", c.Gazetteer.Source)
	}
	if _, err := fuzzy.Get(c.Scorer); err != nil {
		return err
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("batch_workers phải > 0")
	}
	return nil
}

// RequestTimeout thời gian tối đa cho một request parse
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
