package actions

import (
	"math/rand/v2"
	"time"
)

// Policy decides how long a simulated action takes and whether it succeeds.
type Policy interface {
	Duration() time.Duration
	Succeeds() bool
}

// RandomPolicy draws a uniform duration in [MinDuration, MaxDuration] and
// succeeds with probability SuccessRate.
type RandomPolicy struct {
	MinDuration time.Duration
	MaxDuration time.Duration
	SuccessRate float64
}

func DefaultPolicy() RandomPolicy {
	return RandomPolicy{
		MinDuration: 10 * time.Second,
		MaxDuration: 30 * time.Second,
		SuccessRate: 0.9,
	}
}

func (p RandomPolicy) Duration() time.Duration {
	if p.MaxDuration <= p.MinDuration {
		return p.MinDuration
	}
	return p.MinDuration + rand.N(p.MaxDuration-p.MinDuration+1)
}

func (p RandomPolicy) Succeeds() bool {
	return rand.Float64() < p.SuccessRate
}

// FixedPolicy always waits Wait and then reports Success.
type FixedPolicy struct {
	Wait    time.Duration
	Success bool
}

func (p FixedPolicy) Duration() time.Duration { return p.Wait }
func (p FixedPolicy) Succeeds() bool          { return p.Success }
