package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	status := newStatusValue(nil)
	priority := newPriorityValue(nil)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test cases",
		Args:  cobra.NoArgs,
		RunE: a.storeCommand(func(cmd *cobra.Command, args []string) error {
			filter := types.Filter{
				Status:   status.Get(),
				Priority: priority.Get(),
			}
			summaries, err := a.store.List(cmd.Context(), filter)
			if err != nil {
				return storeError(err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(out, summaries)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No test cases found matching the criteria.")
				return nil
			}
			fmt.Fprintln(out, renderTable(summaries))
			return nil
		}),
	}

	cmd.Flags().Var(status, "status", "filter by status ("+statusChoices+")")
	cmd.Flags().Var(priority, "priority", "filter by priority ("+priorityChoices+")")

	return cmd
}
