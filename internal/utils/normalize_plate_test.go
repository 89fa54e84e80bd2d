package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlateKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abc123", "ABC123"},
		{" Q0Q-8B8 ", "Q0Q8B8"},
		{"ABC I23", "ABCI23"},
		{"AB.0/12_3", "AB0123"},
		{"ＡＢＣ１２３", "ABC123"},
		{"ａｂｃ－１", "ABC1"},
		{"Ä-1", "1"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlateKey(tt.input))
		})
	}
}

func TestFoldPlate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ABC-123", "ABC-123"},
		{"  ab c ", "ab c"},
		{"ＡＢＣ１２３", "ABC123"},
		{"ＡＢ－１２", "AB-12"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FoldPlate(tt.input))
		})
	}
}
