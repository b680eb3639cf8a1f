package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apitoc/internal/config"
	"git.home.luguber.info/inful/apitoc/internal/version"
)

// Global carries state shared by all subcommands. It is populated by CLI.AfterApply.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
	// Stdout receives command output; nil means os.Stdout.
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (defaults to ./apitoc.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the API TOC of every page in a generated site"`
	Page    PageCmd    `cmd:"" help:"Build the API TOC of a single page"`
	Inspect InspectCmd `cmd:"" help:"List the TOC entries a page would receive"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild the TOC of pages as the site changes"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; loads the configuration and sets up logging once.
func (c *CLI) AfterApply(kctx *kong.Context, g *Global) error {
	g.Logger = config.LoggingConfig{}.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)

	if strings.HasPrefix(kctx.Command(), "init") {
		return nil
	}
	cfg, err := config.Resolve(c.Config)
	if err != nil {
		return err
	}
	g.Config = cfg
	g.Logger = cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

// NewParser builds the kong parser for cli, binding g for the subcommands.
func NewParser(cli *CLI, g *Global, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("apitoc"),
		kong.Description("Builds the API table of contents of generated documentation pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g, cli),
	}, options...)
	return kong.New(cli, options...)
}
