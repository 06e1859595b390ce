package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/parks-scoring/pkg/db"
)

// Column headers in the volunteers tab
const (
	colID            = "ID"
	colFirstName     = "Nombre"
	colLastName      = "Apellido"
	colEmail         = "Email"
	colStatus        = "Estado"
	colAvailableDays = "Días disponibles"
	colInterestAreas = "Áreas de interés"
)

// Apellido and Email may be absent
var requiredVolunteerColumns = []string{colID, colFirstName, colStatus, colAvailableDays, colInterestAreas}

// ValueReader reads a range of cells. *Client implements it.
type ValueReader interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// VolunteerSheet reads volunteer records from a spreadsheet tab.
// It implements db.VolunteerStore.
type VolunteerSheet struct {
	reader        ValueReader
	spreadsheetID string
	tab           string
}

var _ db.VolunteerStore = (*VolunteerSheet)(nil)

func NewVolunteerSheet(reader ValueReader, spreadsheetID, tab string) *VolunteerSheet {
	return &VolunteerSheet{
		reader:        reader,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}
}

// ListVolunteers returns every volunteer row in the tab.
// List cells are kept raw; they are normalized by db.Volunteer.Profile.
func (s *VolunteerSheet) ListVolunteers(ctx context.Context) ([]db.Volunteer, error) {
	values, err := s.reader.GetValues(ctx, s.spreadsheetID, s.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	volunteers, err := parseVolunteers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse volunteers: %w", err)
	}

	return volunteers, nil
}

// GetVolunteer scans the tab for a volunteer by ID
func (s *VolunteerSheet) GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error) {
	volunteers, err := s.ListVolunteers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range volunteers {
		if volunteers[i].ID == id {
			return &volunteers[i], nil
		}
	}

	return nil, fmt.Errorf("volunteer %s: %w", id, db.ErrNotFound)
}

// parseVolunteers converts raw spreadsheet data into volunteer records using the header row
func parseVolunteers(raw [][]interface{}) ([]db.Volunteer, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	fieldIndexes := make(map[string]int)
	for i, cell := range raw[0] {
		if name, ok := cell.(string); ok {
			fieldIndexes[strings.TrimSpace(name)] = i
		}
	}

	for _, field := range requiredVolunteerColumns {
		if _, ok := fieldIndexes[field]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}

	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok || index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	volunteers := make([]db.Volunteer, 0, len(raw)-1)
	for _, row := range raw[1:] {
		id := getField(colID, row)
		// Skip empty rows
		if id == "" {
			continue
		}

		volunteers = append(volunteers, db.Volunteer{
			ID:            id,
			FirstName:     getField(colFirstName, row),
			LastName:      getField(colLastName, row),
			Email:         getField(colEmail, row),
			Status:        getField(colStatus, row),
			AvailableDays: getField(colAvailableDays, row),
			InterestAreas: getField(colInterestAreas, row),
		})
	}

	return volunteers, nil
}
