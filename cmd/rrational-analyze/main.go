package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"rrational/internal/modkit"
	"rrational/internal/modkit/module"
	"rrational/internal/platform/config"
	"rrational/internal/platform/logger"
	"rrational/internal/platform/store"

	andom "rrational/internal/services/analysis/domain"
	anmod "rrational/internal/services/analysis/module"

	recmod "rrational/internal/services/recordings/module"
	resmod "rrational/internal/services/results/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "rrational",
			ClientTag:  "analyze",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		startStr   = flag.String("start", "", "inclusive day, e.g. 2026-08-01")
		endStr     = flag.String("end", "", "exclusive day, e.g. 2026-08-08")
		recording  = flag.String("recording", "", "analyze a single recording id instead of a range")
		workers    = flag.Int("workers", 2, "concurrency (>=1)")
		page       = flag.Int("page", 200, "page size (recordings)")
		ectopic    = flag.String("ectopic", "", "artifact detection method (range|quotient|adaptive|all)")
		correction = flag.String("correction", "", "correction method (linear|cubic|median)")
		dryRun     = flag.Bool("dry-run", false, "analyze but do not write reports")
	)
	flag.Parse()

	var start, end time.Time
	if *recording == "" {
		if *startStr == "" || *endStr == "" {
			log.Fatal("start/end are required (day resolution) unless -recording is given")
		}
		start, err = time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Fatalf("bad -start: %v", err)
		}
		end, err = time.Parse("2006-01-02", *endStr)
		if err != nil {
			log.Fatalf("bad -end: %v", err)
		}
		if !start.Before(end) {
			log.Fatal("start must be < end")
		}
	}

	// Pass CLI flags into CORE_ANALYZE_* so the module can read its own config
	mustSetEnv("CORE_ANALYZE_WORKERS", strconv.Itoa(*workers))
	mustSetEnv("CORE_ANALYZE_PAGE_SIZE", strconv.Itoa(*page))
	mustSetEnv("CORE_ANALYZE_ECTOPIC_METHOD", *ectopic)
	mustSetEnv("CORE_ANALYZE_CORRECTION_METHOD", *correction)
	mustSetEnv("CORE_ANALYZE_DRY_RUN", map[bool]string{true: "1", false: "0"}[*dryRun])

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Build dependency modules first
	recs := recmod.New(deps)
	res := resmod.New(deps)

	// Build the analysis module with ports injected from deps modules
	am := anmod.New(
		deps,
		anmod.Options{
			Workers:  *workers,
			PageSize: *page,
			DryRun:   *dryRun,
		},
		modkit.WithPorts(andom.Ports{
			Recordings: module.MustPortsOf[recmod.Ports](recs).Reader,
			Results:    module.MustPortsOf[resmod.Ports](res).Writer,
		}),
	)

	// Register ports
	module.Register(recs.Name(), recs.Ports())
	module.Register(res.Name(), res.Ports())
	module.Register(am.Name(), am.Ports())

	// Kick the runner
	ports := am.Ports().(anmod.Ports)
	if *recording != "" {
		if err := ports.Runner.RunOne(context.Background(), *recording); err != nil {
			l.Fatal().Err(err).Msg("analysis failed")
		}
		return
	}
	stats, err := ports.Runner.RunRange(context.Background(), start.UTC(), end.UTC())
	if err != nil {
		l.Fatal().Err(err).Msg("analysis failed")
	}
	l.Info().
		Int("scanned", stats.Scanned).
		Int("written", stats.Written).
		Int("skipped", stats.Skipped).
		Msg("analysis complete")
}
