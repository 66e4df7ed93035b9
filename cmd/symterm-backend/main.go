// Command symterm-backend is the process wrapper for the symbolic
// constraint backend (SPEC_FULL.md §6.3): it parses -max-len and
// -timeout, constructs one Session, and pumps the line protocol over
// stdin/stdout until EOF or the process is signaled. It carries no
// constraint-solving logic of its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/symterm"
)

func main() {
	c := &cli.CLI{
		Name:     "symterm-backend",
		Version:  "0.1.0",
		Args:     os.Args[1:],
		HelpFunc: cli.BasicHelpFunc("symterm-backend"),
		Commands: map[string]cli.CommandFactory{
			"serve": func() (cli.Command, error) {
				return &serveCommand{ui: &cli.ColoredUi{Ui: &cli.BasicUi{Reader: os.Stdin, Writer: os.Stdout, ErrorWriter: os.Stderr}}}, nil
			},
		},
	}
	// A bare invocation runs the one command this binary has; callers are
	// not expected to type "symterm-backend serve" for a single-purpose
	// daemon.
	if len(os.Args) < 2 || (os.Args[1] != "serve" && os.Args[1] != "-h" && os.Args[1] != "--help") {
		c.Args = append([]string{"serve"}, os.Args[1:]...)
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("symterm-backend: %v", err))
		os.Exit(1)
	}
	os.Exit(exitCode)
}

type serveCommand struct {
	ui cli.Ui
}

func (s *serveCommand) Synopsis() string {
	return "Run the symbolic constraint backend over stdin/stdout"
}

func (s *serveCommand) Help() string {
	return `Usage: symterm-backend [options]

  Pumps the line-delimited session meta-protocol over stdin/stdout until
  EOF or an interrupt signal.

Options:
  -max-len=100      bounded-encoding cap for unbounded list/string/tuple
                     operations (spec.md §3.3)
  -int-window=8      integer candidate search window half-width
  -search-budget=200000  leaf-candidate budget before reporting "unknown"
  -timeout=0s        per-solve deadline; 0 means no deadline
  -log-level=info    hclog level for stderr diagnostics
`
}

func (s *serveCommand) Run(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	maxLen := fs.Int("max-len", 100, "bounded-encoding cap for unbounded operations")
	intWindow := fs.Int("int-window", 8, "integer candidate search window half-width")
	searchBudget := fs.Int("search-budget", 200000, "leaf-candidate budget before reporting unknown")
	timeout := fs.Duration("timeout", 0, "per-solve deadline (0 = none)")
	logLevel := fs.String("log-level", "info", "hclog level for stderr diagnostics")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   "symterm-backend",
		Level:  hclog.LevelFromString(*logLevel),
		Output: os.Stderr,
		Color:  hclog.AutoColor,
	})

	cfg := solve.Config{MaxLen: *maxLen, IntWindow: *intWindow, SearchBudget: *searchBudget}
	sess := symterm.NewSession(cfg, log)
	pump := symterm.NewPump(sess, *timeout, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("serving", "max-len", cfg.MaxLen, "int-window", cfg.IntWindow, "search-budget", cfg.SearchBudget, "timeout", *timeout)
	if err := pump.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Error("pump terminated", "error", err)
		s.ui.Error(fmt.Sprintf("symterm-backend: %v", err))
		return 1
	}
	return 0
}
