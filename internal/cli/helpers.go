// Shared helpers for tcm commands.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

const msgNotInitialized = "Error: Database table not found. Please run with --init-db first."

// Flag help fragments listing the accepted enum values.
var (
	priorityChoices = joinChoices(types.Priorities())
	statusChoices   = joinChoices(types.Statuses())
)

func joinChoices[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// parseID converts the positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, userError("Error: invalid test case ID %q (must be a positive integer)", arg)
	}
	return id, nil
}

// storeError maps a Store error to the exit error reported to the user.
// Validation failures are user errors; everything else is a storage failure.
func storeError(err error) error {
	switch {
	case errors.Is(err, types.ErrNotInitialized):
		return userError(msgNotInitialized)
	case errors.Is(err, types.ErrInvalidTitle),
		errors.Is(err, types.ErrInvalidPriority),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrInvalidID):
		return userError("Error: %s", err)
	default:
		return sysError("Database error: %s", err)
	}
}

// reportNotFound prints the not-found message. Not found is a normal
// outcome, so the command still succeeds.
func reportNotFound(cmd *cobra.Command, id int64) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: Test case with ID %d not found.\n", id)
	return nil
}
