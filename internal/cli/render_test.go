package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func TestRenderDetail(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	tc := &types.TestCase{
		ID:        3,
		Title:     "Checkout",
		Priority:  types.PriorityHigh,
		Status:    types.StatusFailed,
		CreatedAt: created,
		UpdatedAt: created.Add(90 * time.Minute),
		Notes:     types.Ptr("card declined"),
	}

	var buf bytes.Buffer
	renderDetail(&buf, tc)

	want := "--- Test Case Details (ID: 3) ---\n" +
		"Title:       Checkout\n" +
		"Description: N/A\n" +
		"Priority:    High\n" +
		"Status:      Failed\n" +
		"Created At:  2026-03-01 09:30\n" +
		"Updated At:  2026-03-01 11:00\n" +
		"Notes:       card declined\n" +
		"----------------------------------------\n"
	assert.Equal(t, want, buf.String())
}
