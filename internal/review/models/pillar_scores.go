package models

import "fmt"

const (
	MinPillarScore = 0
	MaxPillarScore = 4
)

// Pillars is the plain form of PillarScores used for construction,
// persistence and output.
type Pillars struct {
	ProjectImpact         int `json:"project_impact"`
	Direction             int `json:"direction"`
	EngineeringExcellence int `json:"engineering_excellence"`
	OperationalOwnership  int `json:"operational_ownership"`
	PeopleImpact          int `json:"people_impact"`
}

// PillarScores holds the five pillar ratings of a review.
//
// Invariants:
//   - every pillar is an integer between 0 and 4 inclusive
type PillarScores struct {
	p Pillars
}

// NewPillarScores validates each pillar independently.
func NewPillarScores(p Pillars) (PillarScores, error) {
	checks := []struct {
		name  string
		value int
	}{
		{"projectImpact", p.ProjectImpact},
		{"direction", p.Direction},
		{"engineeringExcellence", p.EngineeringExcellence},
		{"operationalOwnership", p.OperationalOwnership},
		{"peopleImpact", p.PeopleImpact},
	}
	for _, c := range checks {
		if c.value < MinPillarScore || c.value > MaxPillarScore {
			return PillarScores{}, invariant(ErrInvalidPillarScore,
				fmt.Sprintf("Invalid %s score: %d. Must be between %d and %d", c.name, c.value, MinPillarScore, MaxPillarScore))
		}
	}
	return PillarScores{p: p}, nil
}

// MustPillarScores panics on invalid input. Use only in tests or with known-good values.
func MustPillarScores(p Pillars) PillarScores {
	s, err := NewPillarScores(p)
	if err != nil {
		panic(err)
	}
	return s
}

func (s PillarScores) ProjectImpact() int         { return s.p.ProjectImpact }
func (s PillarScores) Direction() int             { return s.p.Direction }
func (s PillarScores) EngineeringExcellence() int { return s.p.EngineeringExcellence }
func (s PillarScores) OperationalOwnership() int  { return s.p.OperationalOwnership }
func (s PillarScores) PeopleImpact() int          { return s.p.PeopleImpact }

// ToObject returns the plain pillar values.
func (s PillarScores) ToObject() Pillars {
	return s.p
}

func (s PillarScores) Equal(other PillarScores) bool {
	return s.p == other.p
}
