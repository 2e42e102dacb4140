package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nocturnecity/image-reframer/internal"
)

func (a *app) presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the platform presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := internal.LoadPresets(a.presetsFile)
			if err != nil {
				return err
			}
			platforms := registry.Platforms()
			if name := mustGetString(cmd, "platform"); name != "" {
				p, ok := registry.Platform(name)
				if !ok {
					return fmt.Errorf("platform %q: %w", name, internal.ErrUnknownPreset)
				}
				platforms = []internal.Platform{p}
			}
			if a.jsonOut {
				return printJSON(a.out, platforms)
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLATFORM\tPRESET\tSIZE\tKEY")
			for _, p := range platforms {
				for _, e := range p.Presets {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\n", p.Name, e.Name, e.Dimensions(), internal.Slug(p.Name), internal.Slug(e.Name))
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("platform", "", "only list this platform")
	return cmd
}
