package brotherql_test

import (
	"testing"

	"brother-bridge/brotherql"

	"github.com/stretchr/testify/assert"
)

func TestModelByName(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		wantErr bool
		pins    int
	}{
		{"NarrowQL", "QL-700", false, 720},
		{"WideQL", "QL-1100", false, 1296},
		{"PT", "PT-P750W", false, 128},
		{"Unknown", "QL-9000", true, 0},
		{"Empty", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := brotherql.ModelByName(tt.model)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.model, m.Name)
			assert.Equal(t, tt.pins, m.Pins())
		})
	}
}

func TestModels(t *testing.T) {
	names := brotherql.Models()
	assert.NotEmpty(t, names)
	assert.Contains(t, names, "QL-820NWB")
	assert.Contains(t, names, "PT-P900W")

	// Sorted and free of duplicates.
	seen := make(map[string]bool)
	prev := ""
	for _, name := range names {
		assert.False(t, seen[name], "duplicate model %s", name)
		assert.True(t, prev < name)
		seen[name] = true
		prev = name
	}
}

func TestCompressionOnlyModels(t *testing.T) {
	// The PT models the original cloud plugin special-cased must report
	// compression support, otherwise forced compression would be a no-op.
	for _, name := range []string{"PT-P750W", "PT-P900W"} {
		m, err := brotherql.ModelByName(name)
		assert.NoError(t, err)
		assert.True(t, m.Compression, "%s must support compression", name)
	}
}
