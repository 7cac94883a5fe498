package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a test case",
		Args:  cobra.ExactArgs(1),
		RunE: a.storeCommand(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			err = a.store.Delete(cmd.Context(), id)
			if errors.Is(err, types.ErrNotFound) {
				return reportNotFound(cmd, id)
			}
			if err != nil {
				return storeError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted test case ID: %d\n", id)
			return nil
		}),
	}
}
