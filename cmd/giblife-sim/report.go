package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/sim"
)

var (
	header = color.New(color.FgCyan, color.Bold)
	label  = color.New(color.FgWhite)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
	bad    = color.New(color.FgRed)
)

func printReport(w io.Writer, catalogVersion string, balance config.Balance, results []sim.Result) {
	p := message.NewPrinter(language.English)

	header.Fprintf(w, "GibLife simulation (catalog %s)\n", catalogVersion)
	label.Fprintf(w, "  queue %d, every %s, task %s, freeze at capacity %t\n\n",
		balance.QueueCapacity, balance.GenerationInterval, balance.TaskDuration, balance.FreezeGenerationAtCapacity)

	for _, r := range results {
		header.Fprintf(w, "seed %d  policy %s  %s simulated\n", r.Seed, r.Policy, r.Elapsed.Round(time.Second))
		row(w, "work earned", good, p.Sprintf("%d (%.1f/min)", r.Stats.WorkEarned, r.WorkPerMinute()))
		row(w, "generated", label, p.Sprintf("%d", r.Stats.Generated))
		row(w, "started", label, p.Sprintf("%d", r.Stats.Started))
		row(w, "completed", label, p.Sprintf("%d", r.Stats.Completed))
		row(w, "rejected", pick(r.Stats.Rejected, warn), p.Sprintf("%d", r.Stats.Rejected))
		row(w, "wasted generations", pick(r.Stats.Wasted, bad), p.Sprintf("%d", r.Stats.Wasted))
		row(w, "time at capacity", pick(int(r.TimeAtCap), warn), r.TimeAtCap.Round(time.Second).String())
		row(w, "energy left", label, p.Sprintf("%d", r.Player.Energy))
		row(w, "queue / active at end", label, fmt.Sprintf("%d / %d", r.QueueAtEnd, r.ActiveAtEnd))
		fmt.Fprintln(w)
	}

	if len(results) > 1 {
		var work, wasted int
		for _, r := range results {
			work += r.Stats.WorkEarned
			wasted += r.Stats.Wasted
		}
		n := float64(len(results))
		header.Fprintf(w, "average over %d runs\n", len(results))
		row(w, "work earned", good, p.Sprintf("%.1f", float64(work)/n))
		row(w, "wasted generations", pick(wasted, bad), p.Sprintf("%.1f", float64(wasted)/n))
	}
}

func row(w io.Writer, name string, c *color.Color, value string) {
	label.Fprintf(w, "  %-22s ", name)
	c.Fprintln(w, value)
}

// pick colours a counter only when it is non-zero
func pick(n int, c *color.Color) *color.Color {
	if n == 0 {
		return label
	}
	return c
}
