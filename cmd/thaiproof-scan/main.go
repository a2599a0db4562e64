// thaiproof-scan scans a plain-text document from the command line and
// writes an HTML report
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"thaiproof/internal/modkit"
	"thaiproof/internal/modkit/module"
	"thaiproof/internal/platform/config"
	"thaiproof/internal/platform/logger"
	"thaiproof/internal/platform/store"
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

	var (
		inPath  = flag.String("in", "", "input text file, one paragraph per line (- for stdin)")
		outPath = flag.String("out", "report.html", "output HTML report path")
		workers = flag.Int("workers", 0, "concurrent units (0 = config/default)")
		persist = flag.Bool("persist", false, "record the scan in postgres")
		source  = flag.String("source", "", "source label stored with the scan")
	)
	flag.Parse()

	logger.Init(logger.FromEnv())
	log := logger.Named("thaiproof-scan")

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	paragraphs, err := readLines(*inPath)
	if err != nil {
		log.Fatal().Err(err).Str("in", *inPath).Msg("read input")
	}

	cfg := config.New()
	ctx := context.Background()

	deps := modkit.Deps{Log: *log, Cfg: cfg}

	var st *store.Store
	if *persist {
		url := cfg.Prefix("SERVICE_PGSQL_").MustString("DBURL")
		st, err = store.Open(ctx, store.Config{
			AppName: "thaiproof-scan",
			PG:      store.PGConfig{Enabled: true, URL: url},
		}, store.WithLogger(*log))
		if err != nil {
			log.Fatal().Err(err).Msg("store open failed")
		}
		defer func() { _ = st.Close(context.Background()) }()
		deps.PG = st.PG
	}

	checkers := checkersmod.New(deps, checkersmod.FromConfig(cfg), nil)
	checkerPorts := module.MustPortsOf[checkersdom.Ports](checkers)

	opts := analyzemod.FromConfig(cfg)
	if *workers > 0 {
		opts.Workers = *workers
	}
	analyzer := analyzemod.New(deps, opts, nil, checkerPorts)
	engine := module.MustPortsOf[analyzedom.AnalyzerPort](analyzer)

	rep, err := engine.ScanDocument(ctx, paragraphs, func(done, total int) {
		if done == total || done%25 == 0 {
			log.Info().Int("done", done).Int("total", total).Msg("scan progress")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}

	if err := os.WriteFile(*outPath, []byte(engine.ReportHTML(rep)), 0o644); err != nil {
		log.Fatal().Err(err).Str("out", *outPath).Msg("write report")
	}

	if *persist {
		scans := scansmod.New(deps)
		recorder := module.MustPortsOf[scansdom.RecorderPort](scans)
		id, err := recorder.Record(ctx, scansdom.WriteInput{
			Source:   *source,
			Units:    rep.Units,
			Skipped:  rep.Skipped,
			Findings: rep.Findings,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("record scan")
		}
		log.Info().Str("scan_id", id).Msg("scan recorded")
	}

	fmt.Printf("scanned %d units, %d flagged, %d skipped; report: %s\n",
		rep.Units, len(rep.Findings), rep.Skipped, *outPath)
}

func readLines(path string) ([]string, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}
