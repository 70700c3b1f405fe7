package progress

import (
	"encoding/json"
	"testing"

	"learnhub/models"

	"github.com/stretchr/testify/assert"
)

func quizWithKey(key ...int) []models.QuizQuestion {
	quiz := make([]models.QuizQuestion, len(key))
	for i, k := range key {
		quiz[i] = models.QuizQuestion{CorrectIndex: k, Options: []string{"a", "b", "c"}}
	}
	return quiz
}

func TestScore(t *testing.T) {
	quiz := quizWithKey(1, 0, 2)

	tests := []struct {
		name    string
		answers []any
		want    int
	}{
		{"all correct", []any{1.0, 0.0, 2.0}, 3},
		{"one correct", []any{0.0, 0.0, 0.0}, 1},
		{"short answers", []any{1.0}, 1},
		{"empty", nil, 0},
		{"extra answers ignored", []any{1.0, 0.0, 2.0, 1.0}, 3},
		{"strings never match", []any{"1", "0", "2"}, 0},
		{"null and out of range", []any{nil, 7.0, -1.0}, 0},
		{"fractions never match", []any{1.5, 0.0, 2.0}, 2},
		{"ints", []any{1, 0, int64(2)}, 3},
		{"json numbers", []any{json.Number("1"), json.Number("x"), json.Number("2")}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(quiz, tt.answers))
		})
	}
}

func TestIsComplete(t *testing.T) {
	lessons := []uint{1, 2}

	assert.False(t, IsComplete(PolicyContainment, []uint{1}, lessons))
	assert.True(t, IsComplete(PolicyContainment, []uint{2, 1}, lessons))
	assert.False(t, IsComplete(PolicyContainment, []uint{1, 99}, lessons))

	assert.False(t, IsComplete(PolicyCount, []uint{1}, lessons))
	assert.True(t, IsComplete(PolicyCount, []uint{1, 99}, lessons))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyContainment, p)

	p, err = ParsePolicy("count")
	assert.NoError(t, err)
	assert.Equal(t, PolicyCount, p)

	_, err = ParsePolicy("freeze")
	assert.Error(t, err)
}
