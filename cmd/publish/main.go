// Command publish posts a single transaction notification to the channel,
// mainly useful for testing the decision flow end to end.
package main

import (
	"context"
	"flag"

	"github.com/shopspring/decimal"

	"github.com/chris/splitwise-sync/pkg/config"
	"github.com/chris/splitwise-sync/pkg/logger"
	"github.com/chris/splitwise-sync/pkg/messenger/discord"
	"github.com/chris/splitwise-sync/pkg/models"
	"github.com/chris/splitwise-sync/pkg/publish"
)

func main() {
	id := flag.String("id", "", "transaction id")
	date := flag.String("date", "", "transaction date (YYYY-MM-DD)")
	description := flag.String("description", "", "transaction description")
	amount := flag.String("amount", "", "transaction amount")
	flag.Parse()

	ctx := context.Background()

	var cfg config.Publish
	if err := config.Load(ctx, &cfg); err != nil {
		fallback := logger.New(false)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Debug)

	if *id == "" || *date == "" || *description == "" || *amount == "" {
		log.Fatal().Msg("-id, -date, -description and -amount are all required")
	}

	parsedAmount, err := decimal.NewFromString(*amount)
	if err != nil {
		log.Fatal().Err(err).Str("amount", *amount).Msg("amount is not a decimal")
	}

	msgr, err := discord.New(cfg.DiscordBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord client")
	}

	publisher := publish.NewPublisher(msgr, cfg.DiscordChannelID, log)

	txn := models.Transaction{
		Id:          *id,
		Date:        *date,
		Description: *description,
		Amount:      parsedAmount,
	}

	if err := publisher.Publish(ctx, &txn); err != nil {
		log.Fatal().Err(err).Msg("failed to publish transaction")
	}
}
