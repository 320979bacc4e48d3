package main

import (
	"github.com/spf13/cobra"

	"github.com/jacoelho/sif/pkg/sifversion"
)

func (a *app) versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List supported SIF versions and their message namespaces",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			for _, v := range sifversion.Known() {
				marker := " "
				if v == a.cfg.Version {
					marker = "*"
				}
				if err := writef(a.stdout, "%s %-6s %s\n", marker, v, v.Namespace()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
