package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

// maxTitleWidth caps the Title column, in terminal cells.
const maxTitleWidth = 40

var listHeaders = []string{"ID", "Title", "Status", "Priority", "Created", "Updated"}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderTable draws summaries as a grid with a separator under every row.
func renderTable(summaries []types.Summary) string {
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		BorderRow(true).
		Headers(listHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })

	for _, s := range summaries {
		t.Row(
			strconv.FormatInt(s.ID, 10),
			runewidth.Truncate(s.Title, maxTitleWidth, "..."),
			string(s.Status),
			string(s.Priority),
			types.FormatTimestamp(s.CreatedAt),
			types.FormatTimestamp(s.UpdatedAt),
		)
	}
	return t.Render()
}

// renderDetail prints every field of tc in a fixed layout.
func renderDetail(w io.Writer, tc *types.TestCase) {
	fmt.Fprintf(w, "--- Test Case Details (ID: %d) ---\n", tc.ID)
	fmt.Fprintf(w, "Title:       %s\n", tc.Title)
	fmt.Fprintf(w, "Description: %s\n", orNA(tc.Description))
	fmt.Fprintf(w, "Priority:    %s\n", tc.Priority)
	fmt.Fprintf(w, "Status:      %s\n", tc.Status)
	fmt.Fprintf(w, "Created At:  %s\n", types.FormatTimestamp(tc.CreatedAt))
	fmt.Fprintf(w, "Updated At:  %s\n", types.FormatTimestamp(tc.UpdatedAt))
	fmt.Fprintf(w, "Notes:       %s\n", orNA(tc.Notes))
	fmt.Fprintln(w, "----------------------------------------")
}

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %s", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
