package model

import (
	"sort"
	"time"
)

type Recommendation string

const (
	RecommendationApprove Recommendation = "approve"
	RecommendationReview  Recommendation = "review"
	RecommendationReject  Recommendation = "reject"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk levels so that a higher rank is riskier
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	}
	return -1
}

// ActivityFinancialInput holds the raw numbers of an activity being costed.
// Nil fields are treated as absent and normalized by the estimator.
type ActivityFinancialInput struct {
	Price           *float64
	Capacity        *int
	DurationMinutes *int
}

// FinancialAnalysis is the estimator's verdict for a single activity
type FinancialAnalysis struct {
	MinRevenue     float64        `json:"minRevenue"`
	MaxRevenue     float64        `json:"maxRevenue"`
	AvgRevenue     float64        `json:"avgRevenue"`
	EstimatedCosts float64        `json:"estimatedCosts"`
	ProfitMargin   float64        `json:"profitMargin"`
	BreakEvenPoint int            `json:"breakEvenPoint"`
	Recommendation Recommendation `json:"recommendation"`
	RiskLevel      RiskLevel      `json:"riskLevel"`
}

// StringSet is an unordered collection of identifiers
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values, skipping empty strings
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// VolunteerProfile is the normalized view of a volunteer used for compatibility checks
type VolunteerProfile struct {
	AvailableDays StringSet
	InterestAreas StringSet
}

// ActivitySlot is a single dated occurrence of an activity or shift
type ActivitySlot struct {
	Date              *time.Time
	Category          string
	Capacity          int // 0 means uncapped
	CurrentEnrollment int
}

// CompatibilityResult classifies the findings of a compatibility check
type CompatibilityResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Infos    []string `json:"infos"`
}

// Blocked reports whether the registration must not proceed
func (r CompatibilityResult) Blocked() bool {
	return len(r.Errors) > 0
}
