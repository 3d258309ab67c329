package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"schedule-service/internal/config"
	"schedule-service/internal/repository"
	"schedule-service/internal/schedule"
	"schedule-service/pkg/db"
	"schedule-service/pkg/logger"
	"schedule-service/pkg/mq"
	"schedule-service/pkg/redis"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting reminder sweeper...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
		zap.Duration("interval", cfg.Sweeper.Interval()),
	)

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	milestoneRepo := repository.NewMilestoneRepository(dbConn, log)
	sweeper := schedule.NewSweeper(milestoneRepo, publisher, log)
	guard := schedule.NewDayGuard(rdb, 2*cfg.Sweeper.Interval())

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runOnce := func() {
		ctx, cancel := context.WithTimeout(runCtx, 5*time.Minute)
		defer cancel()

		if !guard.AcquireDay(ctx, time.Now()) {
			log.Info("Sweep already ran today, skipping")
			return
		}

		if _, err := sweeper.Run(ctx); err != nil {
			log.Error("Reminder sweep failed", zap.Error(err))
		}
	}

	go func() {
		ticker := time.NewTicker(cfg.Sweeper.Interval())
		defer ticker.Stop()

		// Run immediately on startup
		runOnce()

		for {
			select {
			case <-runCtx.Done():
				log.Info("Sweep loop stopped")
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down reminder sweeper...")
	cancel()
	log.Info("Reminder sweeper shutdown complete")
}
