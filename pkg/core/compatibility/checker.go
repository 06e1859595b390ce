package compatibility

import (
	"fmt"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
)

// Checker evaluates whether a volunteer can safely be registered for an activity slot.
// It holds no state and is safe for concurrent use.
type Checker struct{}

// NewChecker creates a new Checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check runs the capacity gate followed by the day and interest-area checks.
// Only the capacity gate produces errors; the remaining checks add warnings or infos.
// Checks whose inputs are missing are skipped.
func (c *Checker) Check(volunteer model.VolunteerProfile, slot model.ActivitySlot) model.CompatibilityResult {
	result := model.CompatibilityResult{
		Errors:   []string{},
		Warnings: []string{},
		Infos:    []string{},
	}

	checkCapacity(&result, slot)
	checkDay(&result, volunteer, slot)
	checkInterest(&result, volunteer, slot)

	return result
}

func checkCapacity(result *model.CompatibilityResult, slot model.ActivitySlot) {
	// Zero or negative capacity means the slot is uncapped
	if slot.Capacity <= 0 {
		return
	}

	enrolled := max(slot.CurrentEnrollment, 0)
	if enrolled >= slot.Capacity {
		result.Errors = append(result.Errors, fmt.Sprintf("activity already at capacity (%d)", slot.Capacity))
		return
	}

	result.Infos = append(result.Infos, fmt.Sprintf("%d slots remaining", slot.Capacity-enrolled))
}

func checkDay(result *model.CompatibilityResult, volunteer model.VolunteerProfile, slot model.ActivitySlot) {
	if slot.Date == nil || len(volunteer.AvailableDays) == 0 {
		return
	}

	day := WeekdayName(*slot.Date)
	if !volunteer.AvailableDays.Contains(day) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("volunteer is not available on %s", day))
		return
	}

	result.Infos = append(result.Infos, fmt.Sprintf("volunteer is available on %s", day))
}

func checkInterest(result *model.CompatibilityResult, volunteer model.VolunteerProfile, slot model.ActivitySlot) {
	if slot.Category == "" || len(volunteer.InterestAreas) == 0 {
		return
	}

	label := CategoryLabel(slot.Category)
	if !volunteer.InterestAreas.Contains(slot.Category) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("activity category %s is not among the volunteer's interest areas", label))
		return
	}

	result.Infos = append(result.Infos, fmt.Sprintf("activity category %s matches the volunteer's interests", label))
}
