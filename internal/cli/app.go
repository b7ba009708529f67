package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jumpedia/jumpedia/internal/audit"
	"github.com/jumpedia/jumpedia/internal/batch"
	"github.com/jumpedia/jumpedia/internal/bot"
	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/channels"
	"github.com/jumpedia/jumpedia/internal/config"
	"github.com/jumpedia/jumpedia/internal/index"
	"github.com/jumpedia/jumpedia/internal/pastee"
	"github.com/jumpedia/jumpedia/internal/query"
	"github.com/jumpedia/jumpedia/internal/secret"
)

// app is everything a running bot needs, opened against one data directory.
type app struct {
	bot *bot.Bot
	idx *index.Database
	log *zap.Logger
}

// openApp wires the stores and engines from the resolved config and data
// directory. The caller must close the returned app.
func openApp(cfg *config.Config, dataDir string, logger *zap.Logger) (*app, error) {
	cat, err := catalog.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	batchStore, err := batch.OpenStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open batch store: %w", err)
	}

	idx, err := index.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	chans, err := channels.Open(dataDir)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("open channel config: %w", err)
	}

	auditLog := audit.New(dataDir, cfg.AuditLog)

	var paste *pastee.Client
	if cfg.Paste.Enabled && cfg.Paste.KeyFile != "" {
		key, err := secret.GetKey(cfg.Paste.KeyFile, "PASTEE_KEY")
		if err != nil {
			idx.Close()
			return nil, fmt.Errorf("load paste key: %w", err)
		}
		paste = pastee.New(key)
	}

	cooldown := time.Duration(cfg.GetCooldownSeconds()) * time.Second

	b := &bot.Bot{
		Config:  cfg,
		Catalog: cat,
		Batches: &batch.Engine{
			Catalog: cat,
			Store:   batchStore,
			Audit:   auditLog,
		},
		Queries: &query.Engine{
			Catalog:   cat,
			Ownership: idx,
			Limiter:   query.NewLimiter(cooldown, nil),
		},
		Index:    idx,
		Channels: chans,
		Paste:    paste,
		Log:      logger,
	}

	return &app{bot: b, idx: idx, log: logger}, nil
}

func (a *app) close() {
	if a.idx != nil {
		_ = a.idx.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
