package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careaxis/hms-api/internal/config"
	"github.com/careaxis/hms-api/internal/service/branch"
	"github.com/careaxis/hms-api/pkg/logger"
	redisbroker "github.com/careaxis/hms-api/pkg/messaging/redis"
)

// The worker follows branch changes published by the API instances and
// logs them, giving operations a single audit trail of which branch was
// active when, independent of any one API process.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})
	log.Logger = appLogger

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notices, err := broker.Subscribe(ctx, branch.ChannelBranchChanged)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe to branch changes")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Str("channel", branch.ChannelBranchChanged).Msg("worker listening for branch changes")

	for {
		select {
		case <-quit:
			log.Info().Msg("worker shutting down")
			return
		case payload, ok := <-notices:
			if !ok {
				log.Warn().Msg("subscription closed, exiting")
				return
			}

			var notice branch.ChangeNotice
			if err := json.Unmarshal(payload, &notice); err != nil {
				log.Warn().Err(err).Msg("discarding unreadable branch notice")
				continue
			}
			if notice.Branch == nil {
				continue
			}
			log.Info().
				Str("branch", notice.Branch.Name).
				Str("branch_id", notice.Branch.ID.String()).
				Uint64("seq", notice.Seq).
				Msg("active branch changed")
		}
	}
}
