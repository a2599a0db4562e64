// thaiproof-api serves the document proofing HTTP API
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thaiproof/internal/modkit"
	"thaiproof/internal/modkit/module"
	"thaiproof/internal/platform/config"
	"thaiproof/internal/platform/logger"
	phttp "thaiproof/internal/platform/net/http"
	"thaiproof/internal/platform/store"
	"thaiproof/internal/services/api"
	analyzedom "thaiproof/internal/services/analyze/domain"
	analyzemod "thaiproof/internal/services/analyze/module"
	checkersdom "thaiproof/internal/services/checkers/domain"
	checkersmod "thaiproof/internal/services/checkers/module"
	scansdom "thaiproof/internal/services/scans/domain"
	scansmod "thaiproof/internal/services/scans/module"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	log := logger.Named("thaiproof-api")

	cfg := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// optional postgres seam; the api runs fine without it
	var st *store.Store
	if url := cfg.Prefix("SERVICE_PGSQL_").MayString("DBURL", ""); url != "" {
		var err error
		st, err = store.Open(ctx, store.Config{
			AppName: "thaiproof-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         url,
				MaxConns:    int32(cfg.Prefix("SERVICE_PGSQL_").MayInt("MAX_CONNS", 8)),
				LogSQL:      cfg.Prefix("SERVICE_PGSQL_").MayBool("LOG_SQL", false),
				SlowQueryMs: cfg.Prefix("SERVICE_PGSQL_").MayInt("SLOW_MS", 250),
			},
		}, store.WithLogger(*log))
		if err != nil {
			log.Fatal().Err(err).Msg("store open failed")
		}
		defer func() { _ = st.Close(context.Background()) }()
	}

	deps := modkit.Deps{Log: *log, Cfg: cfg}
	if st != nil {
		deps.PG = st.PG
	}

	checkers := checkersmod.New(deps, checkersmod.FromConfig(cfg), nil)
	module.Register(checkers.Name(), checkers.Ports())
	checkerPorts := module.MustPortsOf[checkersdom.Ports](checkers)

	analyzer := analyzemod.New(deps, analyzemod.FromConfig(cfg), nil, checkerPorts)
	module.Register(analyzer.Name(), analyzer.Ports())

	var recorder scansdom.RecorderPort
	if st != nil && st.PG != nil {
		scans := scansmod.New(deps)
		module.Register(scans.Name(), scans.Ports())
		recorder = module.MustPortsOf[scansdom.RecorderPort](scans)
	}

	srv := phttp.NewServer(cfg.Prefix("CORE_API_"))
	api.Mount(srv.Router(), api.Options{
		Cfg:      cfg.Prefix("CORE_API_"),
		Log:      *log,
		Analyzer: module.MustPortsOf[analyzedom.AnalyzerPort](analyzer),
		Recorder: recorder,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errc:
		if err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}
}
