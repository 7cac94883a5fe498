package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func newUpdateCmd(a *app) *cobra.Command {
	var title, description, notes string
	priority := newPriorityValue(nil)
	status := newStatusValue(nil)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing test case",
		Long: `Update an existing test case. Only the flags given are changed.
An empty --description or --notes clears that field.`,
		Args: cobra.ExactArgs(1),
		RunE: a.storeCommand(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			// Changed distinguishes "not given" from "given as empty".
			var u types.Update
			flags := cmd.Flags()
			if flags.Changed("title") {
				u.Title = &title
			}
			if flags.Changed("description") {
				u.Description = &description
			}
			if flags.Changed("notes") {
				u.Notes = &notes
			}
			u.Priority = priority.Get()
			u.Status = status.Get()

			err = a.store.Update(cmd.Context(), id, u)
			switch {
			case errors.Is(err, types.ErrNothingToUpdate):
				fmt.Fprintln(cmd.OutOrStdout(), "No fields provided for update.")
				return nil
			case errors.Is(err, types.ErrNotFound):
				return reportNotFound(cmd, id)
			case err != nil:
				return storeError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated test case ID: %d\n", id)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new test case title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new test case description")
	cmd.Flags().VarP(priority, "priority", "p", "new test case priority ("+priorityChoices+")")
	cmd.Flags().VarP(status, "status", "s", "new test case status ("+statusChoices+")")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "add or update execution notes")

	return cmd
}
