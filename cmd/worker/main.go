package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hiregate/internal/config"
	"hiregate/internal/lifecycle"
	"hiregate/internal/metrics"
	"hiregate/internal/notify"
	"hiregate/internal/sheetstore"
	"hiregate/internal/storage"
	"hiregate/internal/tasks"
	"hiregate/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var storeOpts []sheetstore.Option
	if !cfg.Sheet.ResolveByHeader {
		storeOpts = append(storeOpts, sheetstore.WithPositionalResolution())
	}
	store := sheetstore.NewExcelStore(cfg.Sheet.WorkbookPath, logger, storeOpts...)
	log.Printf("workbook store ready for worker, path=%s", cfg.Sheet.WorkbookPath)

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

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr()}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
	})

	lifecycleService := lifecycle.NewService(store, logger)
	mailer := notify.NewMailer(cfg.SMTP, logger)
	if !mailer.Configured() {
		logger.Warn("smtp credentials missing, mail delivery will be simulated")
	}

	pdfHandler := worker.NewPDFTaskHandler(store, lifecycleService, storageClient, redisClient, logger)
	emailHandler := worker.NewEmailTaskHandler(mailer, logger)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePDFExport, pdfHandler)
	mux.Handle(tasks.TypeEmailSend, emailHandler)

	logger.Info("worker service started", slog.String("redis_addr", cfg.Redis.Addr()))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
