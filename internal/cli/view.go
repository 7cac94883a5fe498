package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "View details of a specific test case",
		Args:  cobra.ExactArgs(1),
		RunE: a.storeCommand(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			tc, err := a.store.Get(cmd.Context(), id)
			if errors.Is(err, types.ErrNotFound) {
				return reportNotFound(cmd, id)
			}
			if err != nil {
				return storeError(err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), tc)
			}
			renderDetail(cmd.OutOrStdout(), tc)
			return nil
		}),
	}
}
