// Package bootstrap dựng toàn bộ dữ liệu tham chiếu và pipeline parse một
// lần lúc khởi động. Components chỉ đọc sau khi Build xong.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/internal/crf"
	"github.com/thai-address-parser/internal/external"
	"github.com/thai-address-parser/internal/features"
	"github.com/thai-address-parser/internal/fuzzy"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/lexicon"
	"github.com/thai-address-parser/internal/normalizer"
	"github.com/thai-address-parser/internal/parser"
	"github.com/thai-address-parser/internal/resolver"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/tokenizer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrLibpostalUnavailable binary không được build với tag libpostal
var ErrLibpostalUnavailable = errors.New("libpostal không có trong binary (build tag libpostal)")

// Components dữ liệu tham chiếu và pipeline dùng chung
type Components struct {
	Config     config.ParserCfg
	Index      *gazetteer.Index
	Lexicon    *lexicon.Lexicon
	Normalizer *normalizer.Normalizer
	Tokenizers *tokenizer.Registry
	Extractor  *features.Extractor
	Decoder    *tagger.Decoder
	Resolver   *resolver.Resolver
	Parser     *parser.AddressParser

	// ModelVersion fingerprint của model CRF, rỗng khi chưa có model
	ModelVersion string
}

// Options phụ thuộc bên ngoài khi dựng Components
type Options struct {
	Mongo *mongo.Database // bắt buộc khi gazetteer source là mongo
	// Classifier dùng thay cho classifier theo config, cho test
	Classifier tagger.Classifier
}

// GazetteerVersion phiên bản dữ liệu hành chính đang dùng
func (c *Components) GazetteerVersion() string {
	return c.Index.Version()
}

// Build dựng Components theo config
func Build(ctx context.Context, cfg config.ParserCfg, opts Options, logger *zap.Logger) (*Components, error) {
	start := time.Now()

	index, err := LoadGazetteer(ctx, cfg.Gazetteer, opts.Mongo)
	if err != nil {
		return nil, fmt.Errorf("lỗi load gazetteer: %w", err)
	}

	lex, err := lexicon.Load(cfg.ExtraStopwords)
	if err != nil {
		return nil, err
	}

	rules, err := normalizer.LoadRulesConfig()
	if err != nil {
		return nil, err
	}
	rules.Boilerplate = append(rules.Boilerplate, cfg.Boilerplate...)
	norm := normalizer.NewNormalizer(rules)

	tokenizers, err := NewTokenizers(cfg.TokenizerEngine, lex, index, rules)
	if err != nil {
		return nil, err
	}

	scorer, err := fuzzy.Get(cfg.Scorer)
	if err != nil {
		return nil, err
	}

	c := &Components{
		Config:     cfg,
		Index:      index,
		Lexicon:    lex,
		Normalizer: norm,
		Tokenizers: tokenizers,
		Extractor:  features.NewExtractor(lex),
		Resolver:   resolver.New(index, norm, scorer),
	}

	classifier := opts.Classifier
	if classifier == nil {
		classifier, c.ModelVersion, err = newClassifier(cfg, logger)
		if err != nil {
			return nil, err
		}
	}
	c.Decoder = tagger.NewDecoder(c.Extractor, classifier)
	c.Parser = parser.NewAddressParser(norm, tokenizers, c.Decoder, c.Resolver, logger)

	logger.Info("Đã khởi tạo pipeline parse",
		zap.String("gazetteer_version", index.Version()),
		zap.Int("provinces", len(index.Provinces())),
		zap.Int("districts", len(index.Districts())),
		zap.Int("subdistricts", len(index.Subdistricts())),
		zap.String("tokenizer", tokenizers.Default()),
		zap.String("classifier", cfg.Classifier),
		zap.String("model_version", c.ModelVersion),
		zap.Duration("took", time.Since(start)))

	return c, nil
}

// LoadGazetteer đọc gazetteer từ nguồn được cấu hình
func LoadGazetteer(ctx context.Context, cfg config.GazetteerCfg, db *mongo.Database) (*gazetteer.Index, error) {
	switch strings.ToLower(cfg.Source) {
	case "", config.SourceEmbedded:
		return gazetteer.Load(ctx, gazetteer.EmbeddedSource{})
	case config.SourceCSV:
		return gazetteer.Load(ctx, gazetteer.NewCSVSource(cfg.Path))
	case config.SourceSQLite:
		store, err := gazetteer.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return gazetteer.Load(ctx, store)
	case config.SourceMongo:
		if db == nil {
			return nil, errors.New("gazetteer source mongo cần kết nối MongoDB")
		}
		return gazetteer.Load(ctx, gazetteer.NewMongoSource(db, cfg.Version))
	}
	return nil, fmt.Errorf("gazetteer source không hợp lệ: %q", cfg.Source)
}

// NewTokenizers đăng ký engine longest (từ điển gồm lexicon, tên hành chính
// và marker) và charclass
func NewTokenizers(defaultEngine string, lex *lexicon.Lexicon, index *gazetteer.Index, rules *normalizer.RulesConfig) (*tokenizer.Registry, error) {
	words := make([]string, 0, len(lex.Words())+len(index.Names()))
	words = append(words, lex.Words()...)
	words = append(words, index.Names()...)
	words = append(words, rules.LocationKeywords...)
	words = append(words, rules.BangkokAliases...)
	words = append(words, rules.BangkokFormal)

	if defaultEngine == "" {
		defaultEngine = tokenizer.DefaultEngine
	}
	return tokenizer.NewRegistry(defaultEngine, map[string]tokenizer.Tokenizer{
		tokenizer.EngineLongest:   tokenizer.NewLongest(words),
		tokenizer.EngineCharClass: tokenizer.NewCharClass(),
	})
}

// newClassifier model CRF không tồn tại thì vẫn khởi động, mọi lần parse
// trả về ErrClassifierUnavailable
func newClassifier(cfg config.ParserCfg, logger *zap.Logger) (tagger.Classifier, string, error) {
	if cfg.Classifier == config.ClassifierLibpostal {
		if !external.Available() {
			return nil, "", ErrLibpostalUnavailable
		}
		return external.NewLibpostalClassifier(), "libpostal", nil
	}

	model, err := crf.Load(cfg.ModelPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Không tìm thấy model CRF, API parse sẽ trả về 503",
			zap.String("model_path", cfg.ModelPath))
		return tagger.NewCRFClassifier(nil), "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("lỗi load model CRF: %w", err)
	}
	return tagger.NewCRFClassifier(model), model.Version, nil
}
