//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"standard", ModeStandard, false},
		{"enhanced", ModeEnhanced, false},
		{"sequence", ModeSequence, false},
		{"", "", true},
		{"Standard", "", true},
		{"bulk", "", true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown mode")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	withField := &ValidationError{Field: "first_name", Message: "required field is empty"}
	assert.Equal(t, "validation error in first_name: required field is empty", withField.Error())

	withoutField := &ValidationError{Message: "bad record"}
	assert.Equal(t, "validation error: bad record", withoutField.Error())
}
