package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/app/controllers"
	"github.com/thai-address-parser/app/services"
	"github.com/thai-address-parser/helpers/utils"
	"github.com/thai-address-parser/routes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	appCfg, err := config.LoadApp(os.Getenv("APP_CONFIG"))
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}
	parserCfg, err := config.Load(appCfg.ParserConfig)
	if errors.Is(err, os.ErrNotExist) {
		parserCfg, err = config.Load("")
	}
	if err != nil {
		log.Fatal("Cannot load parser config: ", err)
	}

	// 2. Khởi tạo logger
	logger, err := utils.NewLogger(appCfg.Env)
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Thai Address Parser Service", zap.String("env", appCfg.Env))
	ctx := context.Background()

	// 3. Kết nối MongoDB nếu có cấu hình
	var mongoDB *mongo.Database
	if appCfg.MongoURL != "" {
		mongoDB, err = bootstrap.ConnectMongo(ctx, appCfg.MongoURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
	}

	// 4. Dữ liệu tham chiếu và model
	components, err := bootstrap.Build(ctx, parserCfg, bootstrap.Options{Mongo: mongoDB}, logger)
	if err != nil {
		logger.Fatal("Failed to build parser components", zap.Error(err))
	}

	// 5. Meilisearch cho endpoint tìm kiếm
	var searcher services.Searcher
	gazetteerSearcher, err := bootstrap.NewSearcher(appCfg, logger)
	if err != nil {
		logger.Warn("Meilisearch không khả dụng, tắt tìm kiếm gazetteer", zap.Error(err))
	} else if gazetteerSearcher != nil {
		searcher = gazetteerSearcher
	}

	// 6. Cache
	cacheService, err := newCache(ctx, appCfg, mongoDB, components.GazetteerVersion(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	if cacheService != nil {
		defer cacheService.Close()
	}

	// 7. Services và controllers
	addressService := services.NewAddressService(components, cacheService, logger)
	gazetteerService := services.NewGazetteerService(components.Index, searcher)
	adminService := services.NewAdminService(mongoDB, components.Index, searcher, cacheService, logger)

	if appCfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, routes.Controllers{
		Address:   controllers.NewAddressController(addressService, logger),
		Gazetteer: controllers.NewGazetteerController(gazetteerService, logger),
		Admin:     controllers.NewAdminController(adminService, addressService, appCfg.Env, logger),
	}, logger)

	// 8. Khởi động server
	srv := &http.Server{
		Addr:              ":" + appCfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", appCfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// newCache chọn backend cache theo cache.backend, nil khi tắt cache
func newCache(ctx context.Context, cfg config.AppCfg, db *mongo.Database, gazetteerVersion string, logger *zap.Logger) (services.ICacheService, error) {
	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return services.NewCacheService(cfg.CacheL1Size, cfg.CacheTTL), nil
	case config.CacheRedis:
		return services.NewRedisCacheService(cfg.RedisURL, cfg.CacheTTL, logger)
	}

	if db == nil {
		return nil, errors.New("cache mongo/hybrid cần mongo.url")
	}
	mongoCache, err := services.NewMongoCacheService(db, cfg.CacheL1Size, logger)
	if err != nil {
		return nil, err
	}
	if n, err := mongoCache.WarmUp(ctx, gazetteerVersion, cfg.CacheL1Size/2); err != nil {
		logger.Warn("Failed to warm up cache", zap.Error(err))
	} else {
		logger.Info("Cache warmed up", zap.Int("entries", n))
	}
	if cfg.CacheBackend == config.CacheMongo {
		return mongoCache, nil
	}

	redisCache, err := services.NewRedisCacheService(cfg.RedisURL, cfg.CacheTTL, logger)
	if err != nil {
		return nil, err
	}
	return services.NewHybridCacheService(redisCache, mongoCache, logger), nil
}
