package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"aurora/internal/agent"
	"aurora/internal/auth"
	"aurora/internal/config"
	"aurora/internal/provider"
	"aurora/internal/store"
	"aurora/internal/tools"
	"aurora/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store failed: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	issuer, err := auth.NewTokenIssuer(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init auth failed: %v\n", err)
		os.Exit(1)
	}

	llm := provider.NewOpenAIProvider(provider.OpenAIConfig{
		BaseURL:   cfg.Provider.BaseURL,
		APIKey:    cfg.Provider.APIKey,
		Model:     cfg.Provider.Model,
		TimeoutMS: cfg.Provider.TimeoutMS,
	})
	registry := tools.NewTaskRegistry(st)
	ag := agent.New(llm, registry, st, agent.Options{
		HistoryLimit: cfg.Agent.HistoryLimit,
		MaxToolCalls: cfg.Agent.MaxToolCalls,
	})

	server := web.NewServer(st, issuer, ag, cfg.Server.CORSOrigins)
	if err := server.Run(cfg.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "server stopped: %v\n", err)
		os.Exit(1)
	}
}
