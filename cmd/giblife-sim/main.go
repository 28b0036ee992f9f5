package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/sourcegraph/conc/iter"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/logger"
	"github.com/osse101/GibLife_Go/internal/sim"
	"github.com/osse101/GibLife_Go/internal/validation"
)

var (
	app = kingpin.New("giblife-sim", "Headless GibLife balance simulator")

	duration    = app.Flag("duration", "Simulated play time per run").Default("5m").Duration()
	tick        = app.Flag("tick", "Simulation step").Default("50ms").Duration()
	clickEvery  = app.Flag("click-every", "Minimum time between auto-clicks").Default("0s").Duration()
	policy      = app.Flag("policy", "Auto-clicker policy").Default(sim.PolicyGreedy).Enum(sim.PolicyNames()...)
	seed        = app.Flag("seed", "Seed of the first run").Default("1").Uint64()
	runs        = app.Flag("runs", "Number of runs, seeded consecutively").Default("1").Int()
	balancePath = app.Flag("balance", "Balance YAML file (embedded default when empty)").String()
	catalogPath = app.Flag("catalog", "Task catalog JSON file (embedded default when empty)").String()
	lossy       = app.Flag("lossy", "Keep the countdown running at capacity").Bool()
	tracePath   = app.Flag("trace", "Write the first run's events as zstd JSONL to this file").String()
	noColor     = app.Flag("no-color", "Disable coloured output").Bool()
	verbose     = app.Flag("verbose", "Log game decisions").Short('v').Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	color.NoColor = color.NoColor || *noColor

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, "text", "giblife-sim", "dev", "sim", false), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	balance, err := config.LoadBalance(*balancePath)
	if err != nil {
		return err
	}
	if *lossy {
		balance.FreezeGenerationAtCapacity = false
	}

	loader, err := catalog.NewLoader(validation.NewSchemaValidator())
	if err != nil {
		return err
	}
	cat, _, err := catalog.Build(loader, *catalogPath)
	if err != nil {
		return err
	}

	p, err := sim.PolicyByName(*policy)
	if err != nil {
		return err
	}

	if *runs < 1 {
		*runs = 1
	}
	configs := make([]sim.Config, *runs)
	for i := range configs {
		configs[i] = sim.Config{
			Balance:    balance,
			Catalog:    cat,
			Policy:     p,
			Duration:   *duration,
			Tick:       *tick,
			ClickEvery: *clickEvery,
			Seed:       *seed + uint64(i),
		}
	}

	if *tracePath != "" {
		tw, err := sim.CreateTraceFile(*tracePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := tw.Close(); err != nil {
				fmt.Fprintln(os.Stderr, color.YellowString("trace: %v", err))
			}
		}()
		configs[0].Trace = tw
	}

	type outcome struct {
		res sim.Result
		err error
	}
	outcomes := iter.Map(configs, func(cfg *sim.Config) outcome {
		res, err := sim.Run(ctx, *cfg)
		return outcome{res: res, err: err}
	})

	results := make([]sim.Result, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return o.err
		}
		results = append(results, o.res)
	}

	printReport(os.Stdout, cat.Version(), balance, results)
	return nil
}
