// Command arptrace runs arpeggiator scenario scripts and prints what the
// engine played.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/justyntemme/cvarp/pkg/arp"
	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/bus"
	"github.com/justyntemme/cvarp/pkg/framework/debug"
	"github.com/justyntemme/cvarp/pkg/scenario"
)

type result struct {
	trace *scenario.Trace
	err   error
}

func main() {
	os.Exit(run())
}

func run() int {
	rate := flag.Float64("rate", dsp.SampleRate44k1, "Sample rate in Hz")
	block := flag.Int("block", scenario.DefaultBlockSize, "Processing block size in samples")
	csvOut := flag.Bool("csv", false, "Write CSV even when stdout is a terminal")
	profile := flag.Bool("profile", false, "Print block processing statistics")
	jobs := flag.Int("j", runtime.NumCPU(), "Scenarios to run in parallel")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error, off)")
	logFile := flag.String("log-file", "", "Write log output to a file instead of stderr")
	jacks := flag.Bool("jacks", false, "Print the module's jacks and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: arptrace [options] scenario.lua...\n\nRuns arpeggiator scenarios and prints their output traces.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  arptrace pkg/scenario/testdata/reset.lua\n")
		fmt.Fprintf(os.Stderr, "  arptrace -rate 48000 -profile pkg/scenario/testdata/*.lua\n")
		fmt.Fprintf(os.Stderr, "  arptrace pkg/scenario/testdata/*.lua > trace.csv\n")
	}
	flag.Parse()

	if *jacks {
		if err := printJacks(os.Stdout, arp.Jacks()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}
	if flag.NArg() == 0 {
		flag.Usage()
		return 1
	}
	if *jobs < 1 {
		*jobs = 1
	}

	level, err := debug.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if *logFile != "" {
		fl, err := debug.NewFileLogger(*logFile, "arptrace", debug.DefaultFlags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer fl.Close()
		debug.SetDefault(fl)
	}
	debug.SetLevel(level)

	runner := scenario.NewRunner(*rate)
	runner.BlockSize = *block
	if *profile {
		runner.Profiler = debug.NewProfiler()
	}

	results, err := runAll(runner, flag.Args(), *jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	asCSV := *csvOut || !term.IsTerminal(int(os.Stdout.Fd()))
	w := bufio.NewWriter(os.Stdout)
	if err := write(w, results, asCSV); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		return 1
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		return 1
	}

	if runner.Profiler != nil {
		fmt.Fprint(os.Stderr, runner.Profiler.Report(*rate))
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %v\n", r.err)
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d scenario(s) failed\n", failed, len(results))
		return 1
	}
	return 0
}

// runAll runs every script, at most jobs at a time. Failed expectations
// are reported per result; any other error stops the run.
func runAll(runner *scenario.Runner, paths []string, jobs int) ([]result, error) {
	results := make([]result, len(paths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			tr, err := runner.RunFile(ctx, path)
			results[i] = result{trace: tr, err: err}
			if err != nil && !errors.Is(err, scenario.ErrExpectation) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func write(w io.Writer, results []result, asCSV bool) error {
	header := true
	for _, r := range results {
		if r.trace == nil {
			continue
		}
		if asCSV {
			if err := r.trace.WriteCSV(w, header); err != nil {
				return err
			}
			header = false
			continue
		}
		if !header {
			fmt.Fprintln(w)
		}
		header = false
		if err := r.trace.WriteTable(w); err != nil {
			return err
		}
	}
	return nil
}

func printJacks(w io.Writer, jacks *bus.Configuration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "jack\tdirection\tsignal\tchannels")
	for _, j := range jacks.All() {
		dir := "in"
		if j.Direction == bus.DirectionOutput {
			dir = "out"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", j.Name, dir, j.Signal, j.Channels)
	}
	return tw.Flush()
}
