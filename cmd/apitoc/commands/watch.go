package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/apitoc/internal/logfields"
	"git.home.luguber.info/inful/apitoc/internal/site"
	"git.home.luguber.info/inful/apitoc/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Root     string        `arg:"" optional:"" help:"Site root; overrides site.root" type:"path"`
	Debounce time.Duration `help:"Quiet period before changed pages are processed; overrides watch.debounce"`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	cfg := g.Config.SiteConfig(false)
	if w.Root != "" {
		cfg.Root = w.Root
	}
	debounce := g.Config.DebounceDuration()
	if w.Debounce > 0 {
		debounce = w.Debounce
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunWatch(ctx, cfg, debounce)
}

// RunWatch processes the whole site once, then keeps processing changed pages until ctx is done.
// Container reset is always on while watching, whatever site.reset_container says.
func RunWatch(ctx context.Context, cfg site.Config, debounce time.Duration) error {
	if !cfg.Page.Reset {
		slog.Warn("Enabling container reset for watch mode", logfields.SiteRoot(cfg.Root))
		cfg.Page.Reset = true
	}
	processor := site.NewProcessor(cfg)
	summary, err := processor.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("Initial TOC build finished",
		logfields.Pages(summary.Pages),
		logfields.Changed(summary.Changed),
		logfields.Entries(summary.Entries))

	w, err := watch.New(processor, debounce)
	if err != nil {
		return err
	}
	w.OnBatch(func(s *site.Summary) {
		slog.Info("Rebuilt changed pages", logfields.Pages(s.Pages), logfields.Changed(s.Changed))
		for _, f := range s.Failures {
			slog.Warn("Page failed", logfields.Page(f.Page), slog.String("error", f.Error))
		}
	})
	return w.Run(ctx)
}
