package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want InputStatus
		n    int
	}{
		{"empty", "", InputEmpty, 0},
		{"blank", " 　\n\t", InputEmpty, 0},
		{"short", "経過良好", InputTooShort, 4},
		{"ok", strings.Repeat("あ", 10), InputOK, 10},
		{"trimmed before counting", "  " + strings.Repeat("あ", 10) + "\n", InputOK, 10},
		{"long", strings.Repeat("a", 21), InputTooLong, 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckInput(tc.in, 5, 20)
			assert.Equal(t, tc.want, got.Status)
			assert.Equal(t, tc.n, got.Length)
			assert.Equal(t, tc.want == InputOK, got.OK())
		})
	}

	assert.True(t, CheckInput(strings.Repeat("a", 1000), 1, 0).OK(), "zero max disables the bound")
}
