package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/internal/search"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

// DefaultDatabase database khi URI không chỉ định
const DefaultDatabase = "thai_address_parser"

// ConnectMongo kết nối và ping MongoDB. Tên database lấy từ path của URI.
func ConnectMongo(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Database, error) {
	dbName := DatabaseName(uri)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("không thể ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return client.Database(dbName), nil
}

// DatabaseName tên database trong URI, DefaultDatabase nếu không có
func DatabaseName(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

// NewSearcher kết nối Meilisearch, nil khi chưa cấu hình meilisearch.url
func NewSearcher(cfg config.AppCfg, logger *zap.Logger) (*search.GazetteerSearcher, error) {
	if cfg.MeiliURL == "" {
		return nil, nil
	}
	return search.NewGazetteerSearcher(search.SearchConfig{
		Host:      cfg.MeiliURL,
		APIKey:    cfg.MeiliKey,
		IndexName: cfg.MeiliIndex,
		Timeout:   30 * time.Second,
	}, logger)
}
