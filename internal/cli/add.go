package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

var errTitleRequired = errors.New(`required flag "title" not set`)

func newAddCmd(a *app) *cobra.Command {
	var title, description string
	priority := newPriorityValue(types.Ptr(types.DefaultPriority))

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new test case",
		Args:  cobra.NoArgs,
		// Checked here rather than with MarkFlagRequired, which cobra
		// enforces even when --init-db has already handled the invocation.
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if a.initDone || cmd.Flags().Changed("title") {
				return nil
			}
			return userError("Error: %s\n%s", errTitleRequired, strings.TrimRight(cmd.UsageString(), "\n"))
		},
		RunE: a.storeCommand(func(cmd *cobra.Command, args []string) error {
			tc := types.NewTestCase{
				Title:    title,
				Priority: *priority.Get(),
			}
			if cmd.Flags().Changed("description") {
				tc.Description = &description
			}

			id, err := a.store.Create(cmd.Context(), tc)
			if err != nil {
				return storeError(err)
			}

			if a.flags.jsonMode {
				created, err := a.store.Get(cmd.Context(), id)
				if err != nil {
					return storeError(err)
				}
				return writeJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully added test case: '%s' (ID: %d)\n", title, id)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "test case title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "test case description")
	cmd.Flags().VarP(priority, "priority", "p", "test case priority ("+priorityChoices+")")

	return cmd
}
