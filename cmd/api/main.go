package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hiregate/internal/account"
	"hiregate/internal/api"
	"hiregate/internal/auth"
	"hiregate/internal/config"
	"hiregate/internal/lifecycle"
	"hiregate/internal/sheetstore"
	"hiregate/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	privateKeyPEM, err := os.ReadFile(cfg.Auth.PrivateKeyPath)
	if err != nil {
		log.Fatalf("read private key: %v", err)
	}
	publicKeyPEM, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		log.Fatalf("read public key: %v", err)
	}

	authService, err := auth.NewAuthService(privateKeyPEM, publicKeyPEM, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	var storeOpts []sheetstore.Option
	if !cfg.Sheet.ResolveByHeader {
		storeOpts = append(storeOpts, sheetstore.WithPositionalResolution())
	}
	store := sheetstore.NewExcelStore(cfg.Sheet.WorkbookPath, logger, storeOpts...)
	log.Printf("workbook store ready, path=%s", cfg.Sheet.WorkbookPath)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("close asynq client failed", slog.Any("error", err))
		}
	}()

	accounts := account.NewService(store, logger)
	lifecycleService := lifecycle.NewService(store, logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, cfg, store, accounts, lifecycleService, authService, asynqClient, redisClient, storageClient, logger)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
