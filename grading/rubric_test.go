package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubricMatch(t *testing.T) {
	r, err := NewRubric("hw1", []Question{
		{ID: 0, Name: "reduce", Weight: 100, Tests: []string{`^TestFractionReduce(/|$)`}},
		{ID: 1, Name: "complex", Weight: 50, Tests: []string{`^TestComplex`, `^TestMagnitude`}},
	})
	require.NoError(t, err)

	q, ok := r.Match("TestFractionReduce/num=1,den=2")
	require.True(t, ok)
	assert.Equal(t, 0, q.ID)

	q, ok = r.Match("TestMagnitude")
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)

	_, ok = r.Match("TestFractionReduceExtra")
	assert.False(t, ok)

	assert.Equal(t, 150.0, r.TotalWeight())
}

func TestRubricFirstMatchWins(t *testing.T) {
	r, err := NewRubric("hw", []Question{
		{ID: 4, Weight: 1, Tests: []string{`^TestRead`}},
		{ID: 2, Weight: 1, Tests: []string{`CSV`}},
	})
	require.NoError(t, err)

	q, ok := r.Match("TestReadCSV")
	require.True(t, ok)
	assert.Equal(t, 4, q.ID)
}

func TestNewRubricErrors(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
	}{
		{"DuplicateID", []Question{{ID: 1}, {ID: 1}}},
		{"NegativeID", []Question{{ID: -1}}},
		{"NegativeWeight", []Question{{ID: 0, Weight: -5}}},
		{"BadPattern", []Question{{ID: 0, Tests: []string{"("}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRubric("bad", tt.questions)
			assert.Error(t, err)
		})
	}
}
