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

	"project-tracker/internal/cache"
	"project-tracker/internal/config"
	"project-tracker/internal/database"
	"project-tracker/internal/handlers"
	"project-tracker/internal/monitoring"
	"project-tracker/internal/services"
	"project-tracker/internal/worker"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Missing .env is fine; everything falls back to real env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer redisCache.Close()

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
		return redisCache.Health()
	})

	queue := worker.NewJobQueue(redisCache.Client())
	jobWorker := startWorker(cfg, db, redisCache)
	defer jobWorker.Stop()

	go scheduleTokenCleanup(queue)

	router := handlers.SetupRouter(handlers.RouterDeps{
		DB:    db,
		Cfg:   cfg,
		Cache: redisCache,
		Queue: queue,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func startWorker(cfg *config.Config, db *gorm.DB, redisCache *cache.RedisCache) *worker.Worker {
	jobWorker := worker.NewWorker(worker.WorkerConfig{
		RedisClient:  redisCache.Client(),
		Queues:       cfg.Worker.Queues,
		PollInterval: cfg.Worker.PollInterval,
	})

	jobWorker.RegisterHandler(worker.JobTypeTaskReminder, func(ctx context.Context, job *worker.Job) error {
		taskID, _ := job.Payload["task_id"].(string)
		title, _ := job.Payload["title"].(string)
		log.Printf("task %s (%q) reached its deadline", taskID, title)
		return nil
	})

	jobWorker.RegisterHandler(worker.JobTypeTokenCleanup, func(ctx context.Context, job *worker.Job) error {
		return services.PurgeExpiredTokens(db.WithContext(ctx))
	})

	jobWorker.Start(cfg.Worker.Concurrency)
	return jobWorker
}

// scheduleTokenCleanup enqueues a cleanup job hourly so expired refresh
// tokens do not pile up.
func scheduleTokenCleanup(queue *worker.JobQueue) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		if err := queue.Enqueue("default", worker.JobTypeTokenCleanup, nil); err != nil {
			log.Printf("failed to enqueue token cleanup: %v", err)
		}
		<-ticker.C
	}
}
