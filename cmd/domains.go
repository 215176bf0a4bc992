package main

import (
	"fmt"

	"domainstatus/internal/extract"

	"github.com/spf13/cobra"
)

// domainsCommand prints the normalized domain list of a pixel-area artifact,
// one per line, without probing anything.
func domainsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "domains <pixel-data.json>",
		Short: "Lists the distinct domains found in a pixel data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := extract.FromFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range domains {
				if _, err := fmt.Fprintln(out, d); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
