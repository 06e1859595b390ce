package api

import (
	"time"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/core/services"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

const dateLayout = "2006-01-02"

// ViabilityRequest carries the raw numbers of an activity. Every field is optional.
type ViabilityRequest struct {
	Price           *float64 `json:"price"`
	Capacity        *int     `json:"capacity"`
	DurationMinutes *int     `json:"durationMinutes"`
}

type VolunteerInput struct {
	AvailableDays []string `json:"availableDays"`
	InterestAreas []string `json:"interestAreas"`
}

type SlotInput struct {
	Date              string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category          string `json:"category"`
	Capacity          int    `json:"capacity"`
	CurrentEnrollment int    `json:"currentEnrollment"`
}

// CompatibilityRequest checks an ad-hoc volunteer profile against an ad-hoc slot
type CompatibilityRequest struct {
	Volunteer *VolunteerInput `json:"volunteer" binding:"required"`
	Slot      *SlotInput      `json:"slot" binding:"required"`
}

// ParticipationRequest checks stored records; Date picks the occurrence of a recurring activity
type ParticipationRequest struct {
	VolunteerID string `json:"volunteerId" binding:"required"`
	ActivityID  string `json:"activityId" binding:"required"`
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type CompatibilityResponse struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Infos    []string `json:"infos"`
	Blocked  bool     `json:"blocked"`
}

type ActivitySummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type ActivityViabilityResponse struct {
	Activity ActivitySummary         `json:"activity"`
	Analysis model.FinancialAnalysis `json:"analysis"`
}

type PendingReviewsResponse struct {
	Counts  map[model.Recommendation]int `json:"counts"`
	Reviews []ActivityViabilityResponse  `json:"reviews"`
}

type ParticipationResponse struct {
	CompatibilityResponse
	Date       string   `json:"date,omitempty"`
	DataIssues []string `json:"dataIssues"`
}

type VolunteerMatchResponse struct {
	ID          string                `json:"id"`
	DisplayName string                `json:"displayName"`
	Result      CompatibilityResponse `json:"result"`
}

type VolunteerSearchResponse struct {
	Activity   ActivitySummary          `json:"activity"`
	Date       string                   `json:"date,omitempty"`
	Full       bool                     `json:"full"`
	Matches    []VolunteerMatchResponse `json:"matches"`
	DataIssues []string                 `json:"dataIssues"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (r ViabilityRequest) toInput() model.ActivityFinancialInput {
	return model.ActivityFinancialInput{
		Price:           r.Price,
		Capacity:        r.Capacity,
		DurationMinutes: r.DurationMinutes,
	}
}

// toProfile lowercases day names the same way stored volunteer records are normalized
func (v VolunteerInput) toProfile() model.VolunteerProfile {
	days := make([]string, 0, len(v.AvailableDays))
	for _, d := range v.AvailableDays {
		days = append(days, normalizeDay(d))
	}
	return model.VolunteerProfile{
		AvailableDays: model.NewStringSet(days...),
		InterestAreas: model.NewStringSet(v.InterestAreas...),
	}
}

func newCompatibilityResponse(result model.CompatibilityResult) CompatibilityResponse {
	return CompatibilityResponse{
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Infos:    result.Infos,
		Blocked:  result.Blocked(),
	}
}

func newActivitySummary(a db.Activity) ActivitySummary {
	return ActivitySummary{
		ID:       a.ID,
		Name:     a.Name,
		Category: a.Category,
		Status:   string(a.Status),
	}
}

func newActivityViabilityResponse(e services.ActivityEstimate) ActivityViabilityResponse {
	return ActivityViabilityResponse{
		Activity: newActivitySummary(e.Activity),
		Analysis: e.Analysis,
	}
}

func formatSlotDate(slot model.ActivitySlot) string {
	if slot.Date == nil {
		return ""
	}
	return slot.Date.Format(dateLayout)
}

func (s SlotInput) toSlot(date *time.Time) model.ActivitySlot {
	return model.ActivitySlot{
		Date:              date,
		Category:          s.Category,
		Capacity:          s.Capacity,
		CurrentEnrollment: s.CurrentEnrollment,
	}
}
