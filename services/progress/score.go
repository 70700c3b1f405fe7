package progress

import (
	"encoding/json"
	"fmt"
	"math"

	"learnhub/models"
)

// CompletionPolicy decides when a set of completed lessons completes a course.
type CompletionPolicy string

const (
	// PolicyContainment completes a course once every current lesson is done.
	PolicyContainment CompletionPolicy = "containment"
	// PolicyCount completes a course once as many lessons are done as the
	// course has, whichever they are.
	PolicyCount CompletionPolicy = "count"
)

func ParsePolicy(value string) (CompletionPolicy, error) {
	switch CompletionPolicy(value) {
	case PolicyContainment, "":
		return PolicyContainment, nil
	case PolicyCount:
		return PolicyCount, nil
	default:
		return "", fmt.Errorf("unknown completion policy %q", value)
	}
}

// IsComplete applies the policy to the completed set and the course's
// current lesson ids.
func IsComplete(policy CompletionPolicy, completed, lessons []uint) bool {
	if policy == PolicyCount {
		return len(completed) >= len(lessons)
	}
	done := make(map[uint]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	for _, id := range lessons {
		if _, ok := done[id]; !ok {
			return false
		}
	}
	return true
}

// Score counts positions where the submitted answer equals the question's
// correct index. Missing, null, fractional or non-numeric answers never match.
func Score(quiz []models.QuizQuestion, answers []any) int {
	score := 0
	for i, q := range quiz {
		if i >= len(answers) {
			break
		}
		if idx, ok := answerIndex(answers[i]); ok && idx == q.CorrectIndex {
			score++
		}
	}
	return score
}

func answerIndex(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
