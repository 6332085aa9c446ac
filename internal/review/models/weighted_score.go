package models

import (
	"fmt"
	"math"

	dErrors "calibra/pkg/domain-errors"
)

const MaxWeightedScore = 4.0

// Percentage thresholds for bonus tiers.
const (
	ExceedsThreshold = 85.0
	MeetsThreshold   = 50.0
)

// BonusTier classifies a final score for bonus purposes.
type BonusTier string

const (
	BonusTierExceeds BonusTier = "EXCEEDS"
	BonusTierMeets   BonusTier = "MEETS"
	BonusTierBelow   BonusTier = "BELOW"
)

// BonusTierFromPercentage maps a 0-100 percentage to a tier.
// Negative percentages are BELOW.
func BonusTierFromPercentage(percentage float64) BonusTier {
	switch {
	case percentage >= ExceedsThreshold:
		return BonusTierExceeds
	case percentage >= MeetsThreshold:
		return BonusTierMeets
	default:
		return BonusTierBelow
	}
}

func ParseBonusTier(s string) (BonusTier, error) {
	switch t := BonusTier(s); t {
	case BonusTierExceeds, BonusTierMeets, BonusTierBelow:
		return t, nil
	}
	return "", dErrors.Wrap(ErrInvalidBonusTier, dErrors.CodeValidation, fmt.Sprintf("Invalid bonus tier: %q", s))
}

func (t BonusTier) String() string { return string(t) }

// WeightedScore is the single 0-4 aggregate of a review.
//
// Invariants:
//   - finite and between 0 and 4 inclusive
type WeightedScore struct {
	value float64
}

func NewWeightedScore(v float64) (WeightedScore, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxWeightedScore {
		return WeightedScore{}, invariant(ErrInvalidWeightedScore,
			fmt.Sprintf("Invalid weighted score: %v. Must be between 0 and %v", v, MaxWeightedScore))
	}
	return WeightedScore{value: v}, nil
}

// MustWeightedScore panics on invalid input. Use only in tests or with known-good values.
func MustWeightedScore(v float64) WeightedScore {
	w, err := NewWeightedScore(v)
	if err != nil {
		panic(err)
	}
	return w
}

func (w WeightedScore) Value() float64 {
	return w.value
}

// Percentage is value/4*100.
func (w WeightedScore) Percentage() float64 {
	return w.value / MaxWeightedScore * 100
}

func (w WeightedScore) BonusTier() BonusTier {
	return BonusTierFromPercentage(w.Percentage())
}
