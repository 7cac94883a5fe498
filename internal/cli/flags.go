package cli

import (
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

// enumValue is a pflag.Value that accepts only the members of a closed
// string type. Invalid values fail during flag parsing, before any command
// runs. value stays nil until the flag is set unless a default is given.
type enumValue[T ~string] struct {
	value *T
	parse func(string) (T, error)
	typ   string
}

var _ pflag.Value = (*enumValue[types.Priority])(nil)

func newPriorityValue(def *types.Priority) *enumValue[types.Priority] {
	return &enumValue[types.Priority]{value: def, parse: types.ParsePriority, typ: "priority"}
}

func newStatusValue(def *types.Status) *enumValue[types.Status] {
	return &enumValue[types.Status]{value: def, parse: types.ParseStatus, typ: "status"}
}

func (e *enumValue[T]) String() string {
	if e.value == nil {
		return ""
	}
	return string(*e.value)
}

func (e *enumValue[T]) Set(s string) error {
	v, err := e.parse(s)
	if err != nil {
		return err
	}
	e.value = &v
	return nil
}

func (e *enumValue[T]) Type() string { return e.typ }

// Get returns the parsed value, or nil when neither set nor defaulted.
func (e *enumValue[T]) Get() *T { return e.value }
