package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/services"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

func (s *Server) handleEstimate(c *gin.Context) {
	var req ViabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, s.deps.Estimator.Estimate(req.toInput()))
}

func (s *Server) handleCheck(c *gin.Context) {
	var req CompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	date, err := s.parseDate(req.Slot.Date)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	slot := req.Slot.toSlot(date)
	result := s.deps.Checker.Check(req.Volunteer.toProfile(), slot)
	c.JSON(http.StatusOK, newCompatibilityResponse(result))
}

func (s *Server) handleCheckParticipation(c *gin.Context) {
	var req ParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	date, err := s.parseDate(req.Date)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	check, err := services.CheckParticipation(c.Request.Context(), s.deps.Activities, s.deps.Volunteers,
		s.deps.Checker, s.requestLogger(c), req.VolunteerID, req.ActivityID, s.slotRequest(date))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ParticipationResponse{
		CompatibilityResponse: newCompatibilityResponse(check.Result),
		Date:                  formatSlotDate(check.Slot),
		DataIssues:            nonNil(check.DataIssues),
	})
}

func (s *Server) handlePendingReviews(c *gin.Context) {
	review, err := services.ReviewPendingActivities(c.Request.Context(), s.deps.Activities, s.deps.Estimator, s.requestLogger(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := PendingReviewsResponse{
		Counts:  review.Counts,
		Reviews: make([]ActivityViabilityResponse, 0, len(review.Estimates)),
	}
	for _, e := range review.Estimates {
		resp.Reviews = append(resp.Reviews, newActivityViabilityResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleActivityViability(c *gin.Context) {
	estimate, err := services.EstimateActivity(c.Request.Context(), s.deps.Activities, s.deps.Estimator, s.requestLogger(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newActivityViabilityResponse(*estimate))
}

func (s *Server) handleFindVolunteers(c *gin.Context) {
	date, err := s.parseDate(c.Query("date"))
	if err != nil {
		s.badRequest(c, err)
		return
	}

	search, err := services.FindCompatibleVolunteers(c.Request.Context(), s.deps.Activities, s.deps.Volunteers,
		s.deps.Checker, s.requestLogger(c), c.Param("id"), s.slotRequest(date))
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := VolunteerSearchResponse{
		Activity:   newActivitySummary(search.Activity),
		Date:       formatSlotDate(search.Slot),
		Full:       search.Full,
		Matches:    make([]VolunteerMatchResponse, 0, len(search.Matches)),
		DataIssues: nonNil(search.DataIssues),
	}
	for _, m := range search.Matches {
		resp.Matches = append(resp.Matches, VolunteerMatchResponse{
			ID:          m.Volunteer.ID,
			DisplayName: m.Volunteer.DisplayName(),
			Result:      newCompatibilityResponse(m.Result),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// nonNil keeps empty lists encoded as [] rather than null
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func (s *Server) slotRequest(date *time.Time) services.SlotRequest {
	return services.SlotRequest{
		Date:     date,
		Now:      s.deps.Now(),
		Location: s.deps.Location,
	}
}

// parseDate reads an optional YYYY-MM-DD date in the configured location
func (s *Server) parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.ParseInLocation(dateLayout, value, s.deps.Location)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (s *Server) requestLogger(c *gin.Context) *zap.Logger {
	return s.deps.Logger.With(zap.String("request_id", c.GetString(requestIDKey)))
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     "invalid request: " + err.Error(),
		RequestID: c.GetString(requestIDKey),
	})
}

// fail maps service errors to responses; internal details are logged, not returned
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     err.Error(),
			RequestID: c.GetString(requestIDKey),
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:     "internal error",
		RequestID: c.GetString(requestIDKey),
	})
}

func normalizeDay(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}
