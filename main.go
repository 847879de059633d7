package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"ed-tradepair/internal/config"
	"ed-tradepair/internal/db"
	"ed-tradepair/internal/eddb"
	"ed-tradepair/internal/engine"
	"ed-tradepair/internal/logger"
)

var version = "dev"

func main() {
	from := flag.String("from", "", "origin system to buy around")
	fromRadius := flag.Float64("from-radius", 0, "light years around the origin to source from")
	to := flag.String("to", "", "system to sell around (origin if empty)")
	toRadius := flag.Float64("to-radius", 0, "light years around the sell system")
	top := flag.Int("top", 0, "number of routes to report")
	workers := flag.Int("workers", 0, "parallel workers (0 = one per CPU)")
	permit := flag.Bool("permit", false, "include permit-locked systems")
	all := flag.Bool("all", false, "sell anywhere in the galaxy, ignoring -to")
	refresh := flag.Bool("refresh", false, "re-download the market dump even if cached")
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	dataDir := flag.String("data", "", "directory for the market dump files")
	flag.Parse()

	logger.Banner(version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Config", err.Error())
		os.Exit(1)
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	mergeSaved(cfg, database.LoadConfig())
	applyFlags(cfg, *from, *fromRadius, *toRadius, *top, *workers, *permit, *dataDir)

	os.MkdirAll(cfg.DataDir, 0755)

	ctx := context.Background()
	client := eddb.NewClient(cfg.DumpBaseURL)
	data, err := eddb.Load(ctx, cfg.DataDir, client, *refresh)
	if err != nil {
		logger.Error("DUMP", fmt.Sprintf("Load failed: %v", err))
		os.Exit(1)
	}

	origin, ok := data.FindSystem(cfg.OriginSystem)
	if !ok {
		logger.Error("Scan", fmt.Sprintf("Unknown system %q", cfg.OriginSystem))
		os.Exit(1)
	}
	sources := data.StationsNear(origin.ID, cfg.SourceRadius, cfg.IncludePermit)

	var destinations []*eddb.Station
	switch {
	case *all:
		destinations = data.AllStations()
	case *to != "":
		sellOrigin, ok := data.FindSystem(*to)
		if !ok {
			logger.Error("Scan", fmt.Sprintf("Unknown system %q", *to))
			os.Exit(1)
		}
		destinations = data.StationsNear(sellOrigin.ID, cfg.DestinationRadius, cfg.IncludePermit)
	default:
		destinations = data.StationsNear(origin.ID, cfg.DestinationRadius, cfg.IncludePermit)
	}

	logger.Section("Scan")
	logger.Stats("Sources", len(sources))
	logger.Stats("Destinations", len(destinations))
	logger.Stats("Pairs", len(sources)*len(destinations))

	scanner := engine.NewScanner()
	scanner.MaxRoutes = cfg.TopRoutes
	scanner.Workers = cfg.Workers
	scanner.ParallelThreshold = cfg.ParallelThreshold
	scanner.KeepUnprofitable = cfg.KeepUnprofitable

	lastPct := 0
	scanner.OnProgress = func(p engine.Progress) {
		pct := int(p.Percent)
		if pct/10 > lastPct/10 || p.SourcesDone == p.SourcesTotal {
			logger.Info("Scan", fmt.Sprintf("%d/%d sources (%.0f%%), ~%s remaining",
				p.SourcesDone, p.SourcesTotal, p.Percent, p.Remaining.Round(time.Second)))
		}
		lastPct = pct
	}

	start := time.Now()
	candidates, err := scanner.FindRoutes(sources, destinations, cfg.TopRoutes)
	if err != nil {
		logger.Error("Scan", err.Error())
		os.Exit(1)
	}
	elapsed := time.Since(start)
	results := engine.Describe(data, candidates)

	if len(results) == 0 {
		logger.Warn("Scan", "No profitable routes found")
	} else {
		printResults(results)
	}
	logger.Success("Scan", fmt.Sprintf("%d routes in %s", len(results), elapsed.Round(time.Millisecond)))

	var topProfit int64
	if len(results) > 0 {
		topProfit = results[0].ProfitPerUnit
	}
	scanID := database.InsertScan(cfg.OriginSystem, len(sources), len(destinations), len(results), topProfit, elapsed)
	database.InsertRouteResults(scanID, results)
	if err := database.SaveConfig(cfg); err != nil {
		logger.Warn("DB", fmt.Sprintf("Could not save settings: %v", err))
	}
}

// mergeSaved backfills last-used settings for fields the config file and
// environment left at their defaults.
func mergeSaved(cfg, saved *config.Config) {
	def := config.Default()
	if cfg.OriginSystem == def.OriginSystem {
		cfg.OriginSystem = saved.OriginSystem
	}
	if cfg.SourceRadius == def.SourceRadius {
		cfg.SourceRadius = saved.SourceRadius
	}
	if cfg.DestinationRadius == def.DestinationRadius {
		cfg.DestinationRadius = saved.DestinationRadius
	}
	if cfg.TopRoutes == def.TopRoutes {
		cfg.TopRoutes = saved.TopRoutes
	}
	if cfg.Workers == def.Workers {
		cfg.Workers = saved.Workers
	}
	if cfg.ParallelThreshold == def.ParallelThreshold {
		cfg.ParallelThreshold = saved.ParallelThreshold
	}
	if cfg.IncludePermit == def.IncludePermit {
		cfg.IncludePermit = saved.IncludePermit
	}
	if cfg.KeepUnprofitable == def.KeepUnprofitable {
		cfg.KeepUnprofitable = saved.KeepUnprofitable
	}
}

// applyFlags overrides config values with explicitly provided flags.
func applyFlags(cfg *config.Config, from string, fromRadius, toRadius float64, top, workers int, permit bool, dataDir string) {
	if from != "" {
		cfg.OriginSystem = from
	}
	if fromRadius > 0 {
		cfg.SourceRadius = fromRadius
	}
	if toRadius > 0 {
		cfg.DestinationRadius = toRadius
	}
	if top > 0 {
		cfg.TopRoutes = top
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if permit {
		cfg.IncludePermit = true
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
}

func printResults(results []engine.RouteResult) {
	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Commodity", "Buy At", "System", "Sell At", "System", "Buy", "Sell", "Profit/u", "Dist (ly)")

	for i, r := range results {
		dist := "?"
		if r.DistanceLy >= 0 {
			dist = fmt.Sprintf("%.1f", r.DistanceLy)
		}
		commodity := r.Commodity
		if commodity == "" {
			commodity = "-"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			commodity,
			r.SourceStation,
			r.SourceSystem,
			r.DestStation,
			r.DestSystem,
			fmt.Sprintf("%d", r.BuyPrice),
			fmt.Sprintf("%d", r.SellPrice),
			fmt.Sprintf("%d", r.ProfitPerUnit),
			dist,
		)
	}
	table.Render()
}
