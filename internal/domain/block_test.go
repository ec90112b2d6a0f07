package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBlock(t *testing.T) {
	cases := []struct {
		name  string
		block TimeBlock
		valid bool
	}{
		{"regular", tb("09:00", "12:00"), true},
		{"full day", tb("00:00", "24:00"), true},
		{"reversed", tb("12:00", "09:00"), false},
		{"zero length", tb("09:00", "09:00"), false},
		{"hour out of range", tb("25:00", "26:00"), false},
		{"minute out of range", tb("09:61", "10:00"), false},
		{"garbage", tb("morning", "noon"), false},
		{"empty", tb("", ""), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.valid, IsValidBlock(c.block))
		})
	}
}

func TestBlocksOverlap(t *testing.T) {
	cases := []struct {
		name    string
		a, b    TimeBlock
		overlap bool
	}{
		{"disjoint", tb("09:00", "10:00"), tb("11:00", "12:00"), false},
		{"touching", tb("09:00", "10:00"), tb("10:00", "11:00"), false},
		{"partial", tb("09:00", "10:30"), tb("10:00", "11:00"), true},
		{"contained", tb("09:00", "12:00"), tb("10:00", "11:00"), true},
		{"identical", tb("09:00", "10:00"), tb("09:00", "10:00"), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlap, BlocksOverlap(c.a, c.b))
			// Симметрично
			assert.Equal(t, c.overlap, BlocksOverlap(c.b, c.a))
		})
	}
}
