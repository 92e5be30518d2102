package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectSet_AddIsIdempotent(t *testing.T) {
	s := NewObjectSet()

	assert.True(t, s.Add("5"))
	assert.False(t, s.Add("5"))
	assert.Equal(t, 1, s.Len())
}

func TestObjectSet_SortedOpaque(t *testing.T) {
	s := NewObjectSet()
	for _, id := range []string{"b", "10", "a", "2"} {
		s.Add(id)
	}

	assert.Equal(t, []string{"10", "2", "a", "b"}, s.Sorted(IDModeOpaque))
}

func TestObjectSet_SortedInteger(t *testing.T) {
	s := NewObjectSet()
	for _, id := range []string{"10", "2", "0", "100", "9"} {
		s.Add(id)
	}

	assert.Equal(t, []string{"0", "2", "9", "10", "100"}, s.Sorted(IDModeInteger))
}

func TestObjectSet_SortedEmpty(t *testing.T) {
	assert.Empty(t, NewObjectSet().Sorted(IDModeOpaque))
}

func TestIDMode_String(t *testing.T) {
	assert.Equal(t, "opaque", IDModeOpaque.String())
	assert.Equal(t, "integer", IDModeInteger.String())
}
