package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend cache
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheMongo  = "mongo"
	CacheHybrid = "hybrid" // Redis L1 + MongoDB L2
)

// AppCfg cấu hình process: cổng, môi trường và các kết nối ngoài. Chuỗi
// URL rỗng là không dùng dịch vụ đó.
type AppCfg struct {
	Port            string
	Env             string
	ParserConfig    string // đường dẫn file ParserCfg
	MongoURL        string
	RedisURL        string
	MeiliURL        string
	MeiliKey        string
	MeiliIndex      string
	CacheBackend    string
	CacheL1Size     int
	CacheTTL        time.Duration
	ShutdownTimeout time.Duration
	WorkerInput     string // file địa chỉ cho cmd/worker, "-" là stdin
	WorkerOutput    string // file NDJSON kết quả, "-" là stdout
}

// LoadApp đọc config/app.yaml (nếu có) và biến môi trường. path rỗng thì
// tìm app.yaml trong ./config và thư mục hiện tại. Biến môi trường dùng
// dạng APP_PORT, MONGO_URL, CACHE_BACKEND...
func LoadApp(path string) (AppCfg, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.shutdown_timeout", "30s")
	v.SetDefault("parser.config", "config/parser.yaml")
	v.SetDefault("mongo.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("meilisearch.url", "")
	v.SetDefault("meilisearch.master_key", "")
	v.SetDefault("meilisearch.index", "thai_admin_units")
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("worker.input", "-")
	v.SetDefault("worker.output", "-")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return AppCfg{}, fmt.Errorf("lỗi đọc config %s: %w", path, err)
		}
	}

	cfg := AppCfg{
		Port:            v.GetString("app.port"),
		Env:             v.GetString("app.env"),
		ParserConfig:    v.GetString("parser.config"),
		MongoURL:        v.GetString("mongo.url"),
		RedisURL:        v.GetString("redis.url"),
		MeiliURL:        v.GetString("meilisearch.url"),
		MeiliKey:        v.GetString("meilisearch.master_key"),
		MeiliIndex:      v.GetString("meilisearch.index"),
		CacheBackend:    strings.ToLower(v.GetString("cache.backend")),
		CacheL1Size:     v.GetInt("cache.l1_size"),
		CacheTTL:        v.GetDuration("cache.ttl"),
		ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
		WorkerInput:     v.GetString("worker.input"),
		WorkerOutput:    v.GetString("worker.output"),
	}
	return cfg, cfg.Validate()
}

// Validate kiểm tra backend cache có đủ kết nối cần thiết
func (c AppCfg) Validate() error {
	switch c.CacheBackend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			return errors.New("cache.backend=redis cần redis.url")
		}
	case CacheMongo:
		if c.MongoURL == "" {
			return errors.New("cache.backend=mongo cần mongo.url")
		}
	case CacheHybrid:
		if c.RedisURL == "" || c.MongoURL == "" {
			return errors.New("cache.backend=hybrid cần redis.url và mongo.url")
		}
	default:
		return fmt.Errorf("cache.backend không hợp lệ: %q", c.CacheBackend)
	}
	if c.CacheL1Size <= 0 {
		return fmt.Errorf("cache.l1_size phải > 0, nhận %d", c.CacheL1Size)
	}
	return nil
}

// IsProduction APP_ENV=production
func (c AppCfg) IsProduction() bool {
	return c.Env == "production"
}
