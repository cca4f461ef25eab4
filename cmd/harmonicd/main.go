package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"harmonicd/internal/config"
	"harmonicd/internal/coordinator"
	"harmonicd/internal/httpapi"
	"harmonicd/internal/ollama"
	"harmonicd/internal/registry"
)

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Flags with environment variable defaults
	addr := flag.String("addr", envDefault("HARMONICD_ADDR", ":8090"), "HTTP listen address, e.g. :8090")
	configPath := flag.String("config", envDefault("HARMONICD_CONFIG", ""), "Optional config file (.yaml/.json/.toml)")
	profile := flag.String("profile", envDefault("HARMONICD_PROFILE", ""), "Default hardware profile id")
	gpuMemGB := flag.Float64("gpu-mem-gb", 0, "Override GPU memory in GB (0 = profile value)")
	catalogPath := flag.String("catalog", envDefault("HARMONICD_CATALOG", ""), "Optional catalog overlay file (YAML)")
	operatorURL := flag.String("operator-url", envDefault("HARMONICD_OPERATOR_URL", ollama.DefaultBaseURL), "Base URL of the generation service used for briefings")
	operatorModel := flag.String("operator-model", envDefault("HARMONICD_OPERATOR_MODEL", ollama.DefaultModel), "Model used for briefing generation")
	operatorTimeout := flag.Int("operator-timeout", 0, "Briefing timeout in seconds (0 = default)")
	corsOrigins := flag.String("cors-origins", envDefault("HARMONICD_CORS_ORIGINS", ""), "Comma-separated allowed CORS origins (empty disables CORS)")
	flag.Parse()

	cfg := config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
	}
	// Flags win over the config file
	if *profile != "" {
		cfg.Profile = *profile
	}
	if *gpuMemGB > 0 {
		cfg.GPUMemGB = *gpuMemGB
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}
	if *operatorURL != "" {
		cfg.OperatorURL = *operatorURL
	}
	if *operatorModel != "" {
		cfg.OperatorModel = *operatorModel
	}
	if *operatorTimeout > 0 {
		cfg.OperatorTimeout = *operatorTimeout
	}

	reg := registry.Default()
	if cfg.CatalogPath != "" {
		var err error
		reg, err = registry.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("failed to load catalog")
		}
	}

	gen := ollama.New(cfg.OperatorURL, cfg.OperatorModel, time.Duration(cfg.OperatorTimeout)*time.Second)
	coord := coordinator.New(coordinator.Config{
		Registry:       reg,
		DefaultProfile: cfg.Profile,
		GPUMemGB:       cfg.GPUMemGB,
		MinParallel:    cfg.MinParallel,
		Generator:      gen,
	})

	httpapi.SetLogger(log)
	if *corsOrigins != "" {
		httpapi.SetCORSOptions(true,
			strings.Split(*corsOrigins, ","),
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Content-Type", "X-Log-Level"},
		)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(coord)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Info().Str("addr", *addr).Str("operator_model", cfg.OperatorModel).Msg("harmonicd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
