package types

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the importance level of a test case.
type Priority string

// Priority values, in descending importance.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is assigned when a test case is created without one.
const DefaultPriority = PriorityMedium

var priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Priorities returns the valid priority values in display order.
func Priorities() []Priority {
	return append([]Priority(nil), priorities...)
}

// ParsePriority returns the Priority named by s. Matching ignores case and
// surrounding whitespace; the result is always the canonical spelling.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range priorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrInvalidPriority, s, joinValues(priorities))
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	for _, v := range priorities {
		if p == v {
			return true
		}
	}
	return false
}

func (p Priority) String() string { return string(p) }

// Status is the execution outcome of a test case.
type Status string

// Status values.
const (
	StatusNotTested Status = "Not Tested"
	StatusPassed    Status = "Passed"
	StatusFailed    Status = "Failed"
	StatusBlocked   Status = "Blocked"
)

// DefaultStatus is assigned to every new test case.
const DefaultStatus = StatusNotTested

var statuses = []Status{StatusNotTested, StatusPassed, StatusFailed, StatusBlocked}

// Statuses returns the valid status values in display order.
func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// ParseStatus returns the Status named by s. Matching ignores case and
// surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrInvalidStatus, s, joinValues(statuses))
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// TestCase is a manually tracked test scenario.
type TestCase struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Notes       *string   `json:"notes"`
}

// Summary is the list projection of a TestCase.
type Summary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTestCase carries the caller-supplied fields of a test case to create.
// ID, status and timestamps are assigned by the store.
type NewTestCase struct {
	Title       string
	Description *string
	Priority    Priority
}

// Validate checks the fields and applies defaults: an unset priority becomes
// DefaultPriority and an empty description is dropped.
func (n *NewTestCase) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrInvalidTitle
	}
	if n.Priority == "" {
		n.Priority = DefaultPriority
	}
	if !n.Priority.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidPriority, n.Priority)
	}
	if n.Description != nil && *n.Description == "" {
		n.Description = nil
	}
	return nil
}

// Update is a partial field set for an existing test case. A nil field was
// not provided and is left unchanged. A non-nil Description or Notes pointing
// at "" clears that field; an empty Title is rejected.
type Update struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
	Notes       *string
}

// IsEmpty reports whether no field was provided.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil &&
		u.Status == nil && u.Notes == nil
}

// Validate checks the provided fields.
func (u Update) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return ErrInvalidTitle
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidPriority, *u.Priority)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidStatus, *u.Status)
	}
	return nil
}

// Filter narrows List results. Set fields are AND-combined equality tests.
type Filter struct {
	Status   *Status
	Priority *Priority
}

// TimestampLayout renders timestamps at minute granularity.
const TimestampLayout = "2006-01-02 15:04"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Ptr returns a pointer to v. Convenient for building Update and Filter values.
func Ptr[T any](v T) *T {
	return &v
}
