package viability

import (
	"math"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
)

// DefaultDurationMinutes is used when an activity has no duration
const DefaultDurationMinutes = 60

// MaxBreakEvenPoint caps the break-even point when a near-zero price would overflow it
const MaxBreakEvenPoint = math.MaxInt32

// CostRates are the fixed-rate assumptions used to estimate the cost of running an activity
type CostRates struct {
	// InstructorHourly is paid per hour of activity duration
	InstructorHourly float64
	// MaterialsPerHead is spent per capacity slot, whether filled or not
	MaterialsPerHead float64
	// FixedIndirect is a flat overhead per activity
	FixedIndirect float64
}

// Thresholds drive the classification of a financial analysis.
// Margins are percentages, ratios are fractions of capacity.
type Thresholds struct {
	RejectMargin   float64
	ReviewMargin   float64
	BreakEvenRatio float64
	MinOccupancy   float64
}

// DefaultCostRates returns the rates used by the parks office
func DefaultCostRates() CostRates {
	return CostRates{
		InstructorHourly: 500,
		MaterialsPerHead: 25,
		FixedIndirect:    200,
	}
}

// DefaultThresholds returns the margin and occupancy thresholds used by the parks office
func DefaultThresholds() Thresholds {
	return Thresholds{
		RejectMargin:   10,
		ReviewMargin:   25,
		BreakEvenRatio: 0.8,
		MinOccupancy:   0.6,
	}
}

// Estimator computes a FinancialAnalysis for an activity.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	rates      CostRates
	thresholds Thresholds
}

// NewEstimator creates an estimator with the given rates and thresholds
func NewEstimator(rates CostRates, thresholds Thresholds) *Estimator {
	return &Estimator{
		rates:      rates,
		thresholds: thresholds,
	}
}

// NewDefaultEstimator creates an estimator with the default rates and thresholds
func NewDefaultEstimator() *Estimator {
	return NewEstimator(DefaultCostRates(), DefaultThresholds())
}

func (e *Estimator) Rates() CostRates {
	return e.rates
}

func (e *Estimator) Thresholds() Thresholds {
	return e.thresholds
}

// Estimate derives the cost envelope, revenue range, margin, break-even point and
// recommendation for an activity. It never fails: missing or malformed numbers are
// normalized to safe defaults.
func (e *Estimator) Estimate(input model.ActivityFinancialInput) model.FinancialAnalysis {
	price, capacity, duration := normalize(input)

	// Costs
	instructorCost := (float64(duration) / 60) * e.rates.InstructorHourly
	materialsCost := float64(capacity) * e.rates.MaterialsPerHead
	estimatedCosts := clampFinite(instructorCost + materialsCost + e.rates.FixedIndirect)

	// Revenue range between minimum occupancy and a full activity.
	// Huge prices saturate at MaxFloat64 instead of overflowing to +Inf.
	minRevenue := clampFinite(float64(capacity) * e.thresholds.MinOccupancy * price)
	maxRevenue := clampFinite(float64(capacity) * price)
	if minRevenue > maxRevenue {
		minRevenue = maxRevenue
	}
	avgRevenue := minRevenue/2 + maxRevenue/2

	profitMargin := 0.0
	if avgRevenue > 0 {
		profitMargin = ((avgRevenue - estimatedCosts) / avgRevenue) * 100
	}
	if !isFinite(profitMargin) {
		profitMargin = 0
	}

	// A free activity can never recover its cost through tickets, so the whole
	// capacity is reported as the break-even point
	breakEvenPoint := capacity
	if price > 0 {
		breakEvenPoint = MaxBreakEvenPoint
		if be := math.Ceil(estimatedCosts / price); be < MaxBreakEvenPoint {
			breakEvenPoint = int(be)
		}
	}

	recommendation, riskLevel := e.classify(profitMargin, breakEvenPoint, capacity)

	return model.FinancialAnalysis{
		MinRevenue:     minRevenue,
		MaxRevenue:     maxRevenue,
		AvgRevenue:     avgRevenue,
		EstimatedCosts: estimatedCosts,
		ProfitMargin:   profitMargin,
		BreakEvenPoint: breakEvenPoint,
		Recommendation: recommendation,
		RiskLevel:      riskLevel,
	}
}

// classify applies the margin rule then the break-even rule.
// The break-even rule may only escalate risk and may only downgrade an approval.
func (e *Estimator) classify(profitMargin float64, breakEvenPoint, capacity int) (model.Recommendation, model.RiskLevel) {
	recommendation := model.RecommendationApprove
	riskLevel := model.RiskLow

	if math.IsNaN(profitMargin) || profitMargin < e.thresholds.RejectMargin {
		recommendation = model.RecommendationReject
		riskLevel = model.RiskHigh
	} else if profitMargin < e.thresholds.ReviewMargin {
		recommendation = model.RecommendationReview
		riskLevel = model.RiskMedium
	}

	// An activity with no attendee slots cannot be justified economically,
	// so zero capacity always counts as a break-even breach
	breakEvenBreached := capacity == 0 ||
		float64(breakEvenPoint) > float64(capacity)*e.thresholds.BreakEvenRatio

	if breakEvenBreached {
		riskLevel = model.RiskHigh
		if recommendation == model.RecommendationApprove {
			recommendation = model.RecommendationReview
		}
	}

	return recommendation, riskLevel
}

func normalize(input model.ActivityFinancialInput) (price float64, capacity int, duration int) {
	if input.Price != nil && isFinite(*input.Price) && *input.Price > 0 {
		price = *input.Price
	}

	if input.Capacity != nil && *input.Capacity > 0 {
		capacity = *input.Capacity
	}

	duration = DefaultDurationMinutes
	if input.DurationMinutes != nil && *input.DurationMinutes > 0 {
		duration = *input.DurationMinutes
	}

	return price, capacity, duration
}

// clampFinite saturates an overflowed amount at the largest finite float
func clampFinite(f float64) float64 {
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	case math.IsNaN(f):
		return 0
	}
	return f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
