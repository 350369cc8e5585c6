package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pvmelo/focuserp/internal/config"
	"github.com/pvmelo/focuserp/internal/ingest"
	"github.com/pvmelo/focuserp/internal/llm"
	"github.com/pvmelo/focuserp/internal/logutil"
	"github.com/pvmelo/focuserp/internal/store"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "focuserp",
		Short:        "Personal task and finance tracker with AI-assisted batch ingestion",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(ingestCmd())
	return cmd
}

// runtime bundles what every command needs after config is loaded.
type runtime struct {
	cfg   config.Config
	log   *slog.Logger
	store *store.Store
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logutil.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Storage.Dir, cfg.Storage.User)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, store: st}, nil
}

// newIngestor assembles the pipeline: Gemini first, OpenAI second, local
// parser as the always-on fallback inside the ingestor itself. With no
// keys configured the provider stays nil and every call parses locally.
func (rt *runtime) newIngestor() *ingest.Ingestor {
	var providers []llm.Provider
	if key := rt.cfg.LLM.GeminiKey(); key != "" {
		providers = append(providers, llm.NewGeminiProvider(key, rt.cfg.LLM.GeminiModel))
	}
	if key := rt.cfg.LLM.OpenAIKey(); key != "" {
		providers = append(providers, llm.NewOpenAIProvider(key, rt.cfg.LLM.OpenAIModel))
	}

	ing := &ingest.Ingestor{Store: rt.store, Log: rt.log}
	if len(providers) > 0 {
		ing.Provider = &llm.Chain{Providers: providers}
	}
	return ing
}
