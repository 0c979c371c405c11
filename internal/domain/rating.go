package domain

import "math"

const (
	RatingMin = 1
	RatingMax = 5
)

// OverallRating computes the review-level rating from a set of policy scores:
// the mean clamped to [1, 5] and rounded to one decimal. Returns 0 for an
// empty set; callers reject empty rating maps before getting here.
func OverallRating(scores []int32) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum int64
	for _, s := range scores {
		sum += int64(s)
	}
	mean := float64(sum) / float64(len(scores))
	return RoundRating(clampRating(mean))
}

// RoundRating rounds a rating value to one decimal place. Display averages
// use the same rounding so cached and recomputed values never disagree.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampRating(v float64) float64 {
	if v < RatingMin {
		return RatingMin
	}
	if v > RatingMax {
		return RatingMax
	}
	return v
}

// ValidScore reports whether a single policy score is in the accepted range.
func ValidScore(score int32) bool {
	return score >= RatingMin && score <= RatingMax
}
