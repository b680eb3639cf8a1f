package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
	"git.home.luguber.info/inful/apitoc/internal/logfields"
	"git.home.luguber.info/inful/apitoc/internal/metrics"
	"git.home.luguber.info/inful/apitoc/internal/progress"
	"git.home.luguber.info/inful/apitoc/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Root            string `arg:"" optional:"" help:"Site root; overrides site.root" type:"path"`
	DryRun          bool   `name:"dry-run" help:"Process pages without writing them back"`
	FailFast        bool   `name:"fail-fast" help:"Stop at the first page that fails"`
	Concurrency     int    `short:"j" help:"Number of pages processed in parallel; overrides site.concurrency"`
	Progress        bool   `short:"p" help:"Show a progress bar"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write run metrics in Prometheus text format to this file" type:"path"`
	Format          string `help:"Summary format" enum:"text,json" default:"text"`
}

func (b *BuildCmd) Run(g *Global, _ *CLI) error {
	cfg := g.Config.SiteConfig(b.DryRun)
	if b.Root != "" {
		cfg.Root = b.Root
	}
	if b.Concurrency > 0 {
		cfg.Concurrency = b.Concurrency
	}
	if b.FailFast {
		cfg.FailFast = true
	}
	textfile := b.MetricsTextfile
	if textfile == "" {
		textfile = g.Config.Metrics.Textfile
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	summary, err := RunBuild(ctx, cfg, b.Progress, textfile)
	if err != nil {
		return err
	}
	if err := writeSummary(g, summary, b.Format); err != nil {
		return err
	}
	if summary.Failed() {
		return errors.NewError(errors.CategoryRuntime, fmt.Sprintf("%d of %d pages failed", len(summary.Failures), summary.Pages)).
			WithContext("site_root", cfg.Root).
			Build()
	}
	return nil
}

// RunBuild processes the site described by cfg. When textfile is set the run's metrics are
// written there afterwards, even if the run failed.
func RunBuild(ctx context.Context, cfg site.Config, showProgress bool, textfile string) (*site.Summary, error) {
	processor := site.NewProcessor(cfg)

	var reg *prom.Registry
	if textfile != "" {
		reg = prom.NewRegistry()
		processor.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}
	if showProgress {
		processor.WithReporter(progress.NewReporter(os.Stderr))
	}

	summary, err := processor.Run(ctx)

	if reg != nil {
		if werr := metrics.WriteTextfile(textfile, reg); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func writeSummary(g *Global, summary *site.Summary, format string) error {
	if format == "json" {
		enc := json.NewEncoder(g.stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return summary.WriteText(g.stdout())
}
