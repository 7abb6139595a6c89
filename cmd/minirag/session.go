package main

import (
	"context"
	"fmt"
	"os"

	"github.com/perbu/ragassist/pkg/config"
	"github.com/perbu/ragassist/pkg/embedder"
	"github.com/perbu/ragassist/pkg/loader"
	"github.com/perbu/ragassist/pkg/logger"
	"github.com/perbu/ragassist/pkg/minirag"
)

// session owns the store for one invocation
type session struct {
	dir   string
	cfg   config.Config
	log   logger.Logger
	emb   embedder.Embedder
	embed minirag.EmbedFunc
	store *minirag.Store
}

func newSession(f *rootFlags) (*session, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = logger.LogLevel(f.logLevel)
	}
	if f.logJSON {
		cfg.Log.JSON = true
	}

	log := logger.NewLogger(&logger.Config{
		Level:      cfg.Log.Level,
		Output:     os.Stderr,
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})

	emb, err := embedder.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	return &session{
		dir:   f.docsDir,
		cfg:   cfg,
		log:   log,
		emb:   emb,
		embed: embedder.Func(emb, log),
		store: minirag.NewStore(minirag.WithChunkSize(cfg.ChunkSize)),
	}, nil
}

// ingest loads the documents directory into the session store
func (s *session) ingest(ctx context.Context) error {
	docs, err := loader.LoadDir(s.dir)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	s.log.Debug("loaded documents", "dir", s.dir, "count", len(docs))

	texts, meta := loader.Batch(docs)
	n := s.store.Ingest(ctx, texts, meta, s.embed)
	s.log.Info("ingested", "dir", s.dir, "documents", len(docs), "chunks", n, "model", s.emb.ModelInfo())

	if len(docs) > 0 && n == 0 {
		s.log.Warn("no chunks could be embedded; is the embedding backend reachable?", "provider", s.cfg.Provider)
	}
	return nil
}
