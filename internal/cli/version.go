package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tcm release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/tcm"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tcm version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.initDone {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tcm v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
