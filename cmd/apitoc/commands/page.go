package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
	"git.home.luguber.info/inful/apitoc/internal/logfields"
	"git.home.luguber.info/inful/apitoc/internal/page"
)

// PageCmd implements the 'page' command.
type PageCmd struct {
	Path    string `arg:"" help:"HTML page to process, or - for stdin"`
	InPlace bool   `short:"i" name:"in-place" help:"Rewrite the page instead of printing it"`
	DryRun  bool   `name:"dry-run" help:"With --in-place, report what would change without writing"`
}

func (p *PageCmd) Run(g *Global, _ *CLI) error {
	opts := g.Config.PageOptions(p.DryRun)

	if p.InPlace {
		if p.Path == "-" {
			return errors.ValidationError("--in-place cannot be used with stdin").Build()
		}
		out, err := page.ProcessFile(p.Path, opts)
		if err != nil {
			return err
		}
		slog.Info("Page processed",
			logfields.Page(p.Path),
			logfields.Entries(len(out.Entries)),
			slog.Bool("changed", out.Changed))
		return nil
	}

	var in io.Reader = os.Stdin
	if p.Path != "-" {
		f, err := os.Open(p.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.WrapError(err, errors.CategoryNotFound, "page not found").WithContext("page", p.Path).Build()
			}
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to open page").WithContext("page", p.Path).Build()
		}
		defer func() {
			_ = f.Close() // read-only
		}()
		in = f
	}
	out, err := page.Process(in, g.stdout(), opts)
	if err != nil {
		return err
	}
	if out.Containers == 0 && len(out.Entries) > 0 {
		slog.Warn("Page has no TOC container", logfields.Page(p.Path), logfields.Entries(len(out.Entries)))
	}
	return nil
}
