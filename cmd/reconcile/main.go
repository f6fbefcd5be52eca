// Command reconcile diffs the two most recent transaction snapshots and
// publishes a notification for every newly observed transaction. The new
// subset is also written out as a JSON artifact for inspection.
package main

import (
	"context"

	"github.com/chris/splitwise-sync/pkg/config"
	"github.com/chris/splitwise-sync/pkg/logger"
	"github.com/chris/splitwise-sync/pkg/messenger/discord"
	"github.com/chris/splitwise-sync/pkg/publish"
	"github.com/chris/splitwise-sync/pkg/reconcile"
	"github.com/chris/splitwise-sync/pkg/snapshot"
)

func main() {
	ctx := context.Background()

	var cfg config.Reconcile
	if err := config.Load(ctx, &cfg); err != nil {
		fallback := logger.New(false)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Debug)

	prevPath, curPath, err := snapshot.LatestPair(cfg.SnapshotGlob)
	if err != nil {
		log.Fatal().Err(err).Str("glob", cfg.SnapshotGlob).Msg("failed to locate snapshots")
	}
	log.Info().Str("prev", prevPath).Str("cur", curPath).Msg("reconciling snapshots")

	prev, err := snapshot.Load(prevPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load previous snapshot")
	}
	cur, err := snapshot.Load(curPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load current snapshot")
	}

	fresh, err := reconcile.NewTransactions(prev, cur)
	if err != nil {
		// A duplicate id means the export is broken; write nothing.
		log.Fatal().Err(err).Msg("reconciliation failed")
	}
	log.Info().Int("count", len(fresh)).Msg("found new transactions")

	if err := snapshot.Write(cfg.Output, fresh); err != nil {
		log.Fatal().Err(err).Msg("failed to write new transactions")
	}

	msgr, err := discord.New(cfg.DiscordBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord client")
	}

	publisher := publish.NewPublisher(msgr, cfg.DiscordChannelID, log)
	if err := publisher.PublishAll(ctx, fresh); err != nil {
		log.Fatal().Err(err).Msg("failed to publish new transactions")
	}
}
