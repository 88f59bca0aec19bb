package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"noveltyneat/internal/config"
	"noveltyneat/internal/storage"
	api "noveltyneat/pkg/noveltyneat"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(message string) error {
	return fmt.Errorf("%s\nusage: noveltyctl <run|runs|history> [flags]", message)
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noveltyneat.db", "sqlite database path")
	configPath := fs.String("config", "", "YAML parameter file; defaults apply when omitted")
	runID := fs.String("run-id", "", "run identifier; generated when omitted")
	generations := fs.Int("gens", 100, "generation budget")
	workers := fs.Int("workers", 4, "parallel evaluation workers")
	seed := fs.Int64("seed", 0, "override the configured random seed (0 keeps it)")
	resume := fs.String("resume", "", "population checkpoint id to resume from")
	checkpointEvery := fs.Int("checkpoint-every", 10, "generations between population checkpoints (0 = final only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		params.Seed = *seed
	}
	// the demo task fixes the network shape
	params.Setup.InputDimension = 2
	params.Setup.OutputDimension = 1

	client, err := api.New(api.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	started := time.Now()
	summary, err := client.Run(ctx, api.RunRequest{
		RunID:              *runID,
		Parameters:         &params,
		Generations:        *generations,
		Workers:            *workers,
		ResumePopulationID: *resume,
		CheckpointEvery:    *checkpointEvery,
	}, api.EvaluatorFunc(evaluateXOR))
	if err != nil {
		return err
	}

	out := newReporter(os.Stdout)
	out.headline("run %s", summary.RunID)
	for _, stats := range summary.History {
		fmt.Printf("gen %4d  fitness max=%.4f avg=%.4f  novelty max=%.4f  archive=%s  eval=%s\n",
			stats.Generation,
			stats.Fitness.RawMaximum,
			stats.Fitness.RawAverage,
			stats.Novelty.RawMaximum,
			humanize.Comma(int64(stats.ArchiveSize)),
			stats.EvaluationDuration.Round(time.Millisecond),
		)
	}
	if summary.Solved {
		out.headline("solved after %d generations in %s", summary.Generations, time.Since(started).Round(time.Millisecond))
		fmt.Printf("winner: %d nodes, %d connections\n",
			len(summary.Winner.Genome.Nodes()), summary.Winner.Genome.Len())
	} else {
		out.headline("generation budget spent (%d) in %s", summary.Generations, time.Since(started).Round(time.Millisecond))
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noveltyneat.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := api.New(api.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	out := newReporter(os.Stdout)
	out.headline("%d run(s)", len(runs))
	for _, run := range runs {
		created := run.CreatedAtUTC
		if t, err := time.Parse(time.RFC3339Nano, run.CreatedAtUTC); err == nil {
			created = humanize.Time(t)
		}
		status := "unsolved"
		if run.Solved {
			status = "solved"
		}
		fmt.Printf("%s  created=%s  seed=%d  population=%s  generations=%d  %s\n",
			run.ID, created, run.Seed,
			humanize.Comma(int64(run.PopulationSize)), run.Generations, status)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noveltyneat.db", "sqlite database path")
	runID := fs.String("run", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("history requires -run")
	}

	client, err := api.New(api.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.History(ctx, *runID)
	if err != nil {
		return err
	}

	out := newReporter(os.Stdout)
	out.headline("history of %s (%d generations)", *runID, len(history))
	for _, stats := range history {
		fmt.Printf("gen %4d  fitness=[%.4f %.4f %.4f]  novelty=[%.4f %.4f %.4f]  archive=%d  age avg=%.2f\n",
			stats.Generation,
			stats.Fitness.RawMinimum, stats.Fitness.RawAverage, stats.Fitness.RawMaximum,
			stats.Novelty.RawMinimum, stats.Novelty.RawAverage, stats.Novelty.RawMaximum,
			stats.ArchiveSize, stats.AgeAverage,
		)
	}
	return nil
}

// reporter bolds headlines when stdout is a terminal and stays plain when
// piped.
type reporter struct {
	out   *os.File
	fancy bool
}

func newReporter(out *os.File) reporter {
	return reporter{
		out:   out,
		fancy: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
	}
}

func (r reporter) headline(format string, args ...any) {
	if r.fancy {
		fmt.Fprintf(r.out, "\x1b[1m"+format+"\x1b[0m\n", args...)
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}
