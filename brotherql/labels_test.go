package brotherql_test

import (
	"testing"

	"brother-bridge/brotherql"

	"github.com/stretchr/testify/assert"
)

func TestLabelByID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantErr   bool
		kind      brotherql.LabelKind
		printable int
	}{
		{"Endless62", "62", false, brotherql.KindEndless, 696},
		{"DieCut29x90", "29x90", false, brotherql.KindDieCut, 306},
		{"Round24", "d24", false, brotherql.KindRound, 236},
		{"Unknown", "99x99", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := brotherql.LabelByID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.kind, l.Kind)
			assert.Equal(t, tt.printable, l.DotsPrintable)
		})
	}
}

func TestLabelTable(t *testing.T) {
	for _, l := range brotherql.AllLabels() {
		assert.NotEmpty(t, l.Name, "label %s has no name", l.ID)
		assert.Greater(t, l.DotsPrintable, 0, "label %s has no printable area", l.ID)
		if l.Kind == brotherql.KindEndless {
			assert.Zero(t, l.DotsLength, "endless label %s must not have a fixed length", l.ID)
			assert.Zero(t, l.TapeLengthMM)
		} else {
			assert.Greater(t, l.DotsLength, 0, "die-cut label %s needs a fixed length", l.ID)
			assert.Greater(t, l.TapeLengthMM, 0)
		}
	}
}
