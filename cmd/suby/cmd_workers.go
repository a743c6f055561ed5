package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/suby/app/jobs"
	"github.com/shashiranjanraj/suby/config"
	"github.com/shashiranjanraj/suby/pkg/cache"
	"github.com/shashiranjanraj/suby/pkg/database"
	"github.com/shashiranjanraj/suby/pkg/logger"
	"github.com/shashiranjanraj/suby/pkg/queue"
	"github.com/shashiranjanraj/suby/pkg/storage"
)

var queueWorkersFlag int

// suby queue:work — run a standalone worker process. Useful with the
// redis driver, where jobs dispatched by the server are consumed here.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := database.Connect(ctx, cfg); err != nil {
			return err
		}
		defer func() { _ = database.Disconnect(context.Background()) }()

		logger.Setup(cfg.AppEnv)
		storage.Connect(cfg)

		if cfg.QueueDriver == "redis" {
			if err := cache.Connect(cfg); err != nil {
				return fmt.Errorf("redis queue driver requires redis: %w", err)
			}
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		queue.UseMongo(database.DB().Collection(database.ColFailedJobs))
		jobs.Register()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = cfg.QueueWorkers
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "Number of concurrent workers (default from config)")
}
