// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMargins_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       Margins
		wantErr string
	}{
		{"zero", Margins{}, ""},
		{"large", Margins{Top: 5, Left: 0.25}, ""},
		{"negative", Margins{Right: -0.1}, "right margin must not be negative"},
		{"nan", Margins{Top: math.NaN()}, "top margin must be a finite number"},
		{"positive infinity", Margins{Bottom: math.Inf(1)}, "bottom margin must be a finite number"},
		{"negative infinity", Margins{Left: math.Inf(-1)}, "left margin must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPercentMargins_Fractions(t *testing.T) {
	p := PercentMargins{Top: 10, Right: 0, Bot: 250, Left: 5}
	assert.Equal(t, Margins{Top: 0.1, Bottom: 2.5, Left: 0.05}, p.Fractions())
	assert.Equal(t, "10/0/250/5%", p.String())
}
