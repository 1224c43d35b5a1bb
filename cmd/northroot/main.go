// Command northroot is the reference CLI front end over the journal
// codec and verifier: append, list, get, verify, inspect, checkpoint.
//
// The CLI is a thin collaborator over the core journal/verifier
// engineering, not where the hard invariants live, but every Northroot
// deployment still ships one fully wired binary.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/northroot/northroot/internal/cliapp"
	"github.com/northroot/northroot/internal/config"
	"github.com/northroot/northroot/internal/nrlog"
	"github.com/northroot/northroot/internal/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := nrlog.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	shutdown := telemetry.Setup(context.Background(), cfg.Telemetry.Enabled)
	defer shutdown(context.Background())

	var cli cliapp.CLI
	parser := kong.Must(&cli,
		kong.Name("northroot"),
		kong.Description("Offline, append-only evidence journal for agent authorizations and executions."),
		kong.Vars{"version": version},
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(log, context.Background()); err != nil {
		log.WithComponent("cliapp").Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
