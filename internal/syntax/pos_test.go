package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPos(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
		valid   bool
	}{
		{"first", NewPos(1, 1), "1:1", true},
		{"later", NewPos(10, 5), "10:5", true},
		{"zero", Pos{}, "0:0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStr, tt.pos.String())
			assert.Equal(t, tt.valid, tt.pos.IsValid())
		})
	}
}

func TestPosAccessors(t *testing.T) {
	p := NewPos(3, 7)
	assert.Equal(t, 3, p.Line())
	assert.Equal(t, 7, p.Col())
	assert.Equal(t, p, Token{Line: 3, Column: 7}.Pos())
}
