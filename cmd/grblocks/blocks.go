// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ik5/grblocks/registry"
	"github.com/spf13/cobra"
)

// `grblocks blocks` command
func (a *app) blocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "Lists the available blocks",
		Long:  "Lists the available blocks with their required and default parameters.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := registry.Default()
			w := cmd.OutOrStdout()

			for _, name := range r.Names() {
				f, _ := r.Lookup(name)
				fmt.Fprintf(w, "%s (%s -> %s)\n  %s\n", f.Name, f.In, f.Out, f.Doc)
				if len(f.Required) > 0 {
					fmt.Fprintf(w, "  required: %s\n", strings.Join(f.Required, ", "))
				}
				if f.Defaults != nil {
					defaults := f.Defaults()
					for _, k := range slices.Sorted(maps.Keys(defaults)) {
						fmt.Fprintf(w, "  %s = %v\n", k, defaults[k])
					}
				}
			}
			return nil
		},
	}
}
