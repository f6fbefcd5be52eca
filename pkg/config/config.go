// Package config loads the immutable configuration each binary needs from
// the environment. Everything is parsed once at startup and passed down;
// nothing reads the environment after that.
package config

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Server configures the webhook server binary.
type Server struct {
	Debug bool   `env:"DEBUG"`
	Addr  string `env:"ADDR,default=0.0.0.0:8080"`

	// Hex-encoded ed25519 application public key used to verify webhooks.
	DiscordPublicKey string `env:"DISCORD_PUBLIC_KEY,required"`
	DiscordBotToken  string `env:"DISCORD_BOT_TOKEN,required"`

	SplitwiseAPIKey  string `env:"SPLITWISE_API_KEY,required"`
	SplitwiseGroupID int64  `env:"SPLITWISE_GROUP_ID,required"`

	// Decision jobs buffered between ack and processing.
	DispatchBuffer  int `env:"DISPATCH_BUFFER,default=16"`
	DispatchWorkers int `env:"DISPATCH_WORKERS,default=2"`
}

// Publish configures the single-transaction publish binary.
type Publish struct {
	Debug            bool   `env:"DEBUG"`
	DiscordBotToken  string `env:"DISCORD_BOT_TOKEN,required"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID,required"`
}

// Reconcile configures the batch reconcile-and-publish binary.
type Reconcile struct {
	Debug            bool   `env:"DEBUG"`
	DiscordBotToken  string `env:"DISCORD_BOT_TOKEN,required"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID,required"`

	// Glob matching snapshot files; lexical order of names is capture order.
	SnapshotGlob string `env:"SNAPSHOT_GLOB,default=transactions.*.json*"`
	// Path the new-transaction subset is written to.
	Output string `env:"RECONCILE_OUTPUT,default=new_transactions.json"`
}

// Load populates cfg from the environment, after merging in a .env file if
// one is present.
func Load(ctx context.Context, cfg any) error {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()
	return envconfig.Process(ctx, cfg)
}
