package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/apitoc/cmd/apitoc/commands"
	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}

	parser, err := commands.NewParser(&cli, global)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage errors are reported by kong; errors raised while loading configuration are
		// classified and go through the adapter like command errors.
		if !errors.IsClassified(err) {
			parser.FatalIfErrorf(err)
		}
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(os.Stderr, err))
	}

	err = kctx.Run()
	os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(os.Stderr, err))
}
