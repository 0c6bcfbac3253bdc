package kernel_test

import (
	"testing"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    kernel.OrderID
		wantErr bool
	}{
		{name: "positive", input: "42", want: 42},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kernel.OrderIDFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewUserID(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		id, err := kernel.NewUserID("  1001 ")

		require.NoError(t, err)
		assert.Equal(t, kernel.UserID("1001"), id)
	})

	t.Run("rejects blank identifiers", func(t *testing.T) {
		_, err := kernel.NewUserID("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
