package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func TestEnumValue(t *testing.T) {
	t.Run("unset without default", func(t *testing.T) {
		v := newStatusValue(nil)
		assert.Nil(t, v.Get())
		assert.Equal(t, "", v.String())
		assert.Equal(t, "status", v.Type())
	})

	t.Run("default until set", func(t *testing.T) {
		v := newPriorityValue(types.Ptr(types.DefaultPriority))
		require.NotNil(t, v.Get())
		assert.Equal(t, types.PriorityMedium, *v.Get())

		require.NoError(t, v.Set("high"))
		assert.Equal(t, types.PriorityHigh, *v.Get())
		assert.Equal(t, "High", v.String())
	})

	t.Run("normalizes case", func(t *testing.T) {
		v := newStatusValue(nil)
		require.NoError(t, v.Set("not tested"))
		assert.Equal(t, types.StatusNotTested, *v.Get())
	})

	t.Run("rejects values outside the set", func(t *testing.T) {
		v := newPriorityValue(nil)
		err := v.Set("Urgent")
		assert.ErrorIs(t, err, types.ErrInvalidPriority)
		assert.Nil(t, v.Get(), "failed Set leaves value untouched")
	})
}

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "42", want: 42},
		{arg: "0", wantErr: true},
		{arg: "-3", wantErr: true},
		{arg: "abc", wantErr: true},
		{arg: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseID(tt.arg)
			if tt.wantErr {
				var ee *exitError
				require.ErrorAs(t, err, &ee)
				assert.Equal(t, exitUserError, ee.code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
