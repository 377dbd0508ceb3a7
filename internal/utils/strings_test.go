package utils

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", nil},
		{"whitespace only", "  ,  , ", nil},
		{"single value", "42", []string{"42"}},
		{"multiple values", "1,2,3", []string{"1", "2", "3"}},
		{"trims whitespace", " 1 , 2 ,3 ", []string{"1", "2", "3"}},
		{"drops empty segments", "1,,2,", []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}

func TestTimerStop(t *testing.T) {
	timer := NewTimer("test_op", zerolog.Nop())
	time.Sleep(time.Millisecond)

	d := timer.Stop()
	assert.Greater(t, d, time.Duration(0))
}
