package main

import (
	"context"
	"log"
	"time"

	"go-jobradar/internal/config"
	"go-jobradar/internal/discord"
	"go-jobradar/internal/filter"
	"go-jobradar/internal/ledger"
	"go-jobradar/internal/remoteok"
	"go-jobradar/internal/runner"
	"go-jobradar/internal/telegram"
)

// One run caps out well under this; the deadline only exists so a hung
// network call cannot stall the scheduler's slot forever.
const runDeadline = 5 * time.Minute

func main() {
	log.Println("🔍 Job Radar starting...")

	//load config. Only a configuration error exits non-zero: the external
	//scheduler should not treat "zero matches" or a flaky API as failure.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	log.Printf("⏰ Looking for jobs posted in the last %d hours", cfg.FreshnessHours)
	log.Printf("🔧 Include keywords: %v", cfg.IncludeKeywords)

	//open the sent-jobs ledger
	led, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		log.Printf("❌ %v", err)
		return
	}
	defer led.Close()

	//optional telegram mirror
	var mirror runner.Mirror
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram mirror disabled: %v", err)
		} else {
			mirror = bot
			log.Println("🤖 Telegram mirror enabled.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), runDeadline)
	defer cancel()

	//run one fetch-filter-notify cycle and exit
	r := runner.New(runner.Options{
		Fetcher:  remoteok.NewClient(cfg.SourceURL, cfg.FetchTimeout),
		Ledger:   led,
		Criteria: filter.NewCriteria(cfg.IncludeKeywords, cfg.ExcludeKeywords, cfg.MustBeRemote),
		Notifier: discord.NewWebhook(cfg.WebhookURL, cfg.SendTimeout),
		Mirror:   mirror,
		Window:   cfg.Window(),
		MaxSends: cfg.MaxSendsPerRun,
	})
	stats := r.Run(ctx)

	log.Printf("✅ Complete! Sent %d new job(s) to Discord", stats.Sent)
}
