package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/apitoc/internal/page"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Path   string `arg:"" help:"HTML page to inspect" type:"existingfile"`
	Format string `help:"Output format" enum:"text,json" default:"text"`
}

type inspectEntry struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Class  string `json:"class"`
	Markup string `json:"markup"`
}

func (i *InspectCmd) Run(g *Global, _ *CLI) error {
	entries, err := page.Inspect(i.Path, g.Config.TOCOptions())
	if err != nil {
		return err
	}

	if i.Format == "json" {
		out := make([]inspectEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, inspectEntry{
				Href:   e.Href,
				Label:  e.Label,
				Kind:   e.Kind.String(),
				Class:  e.Kind.Class(),
				Markup: e.Markup(),
			})
		}
		enc := json.NewEncoder(g.stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(g.stdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tHREF\tLABEL")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind, e.Href, e.Label)
	}
	return tw.Flush()
}
