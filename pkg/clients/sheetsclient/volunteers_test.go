package sheetsclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/parks-scoring/pkg/db"
)

type fakeReader struct {
	values [][]interface{}
	err    error

	gotSpreadsheetID string
	gotRange         string
}

func (f *fakeReader) GetValues(_ context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	f.gotSpreadsheetID = spreadsheetID
	f.gotRange = sheetRange
	return f.values, f.err
}

func volunteerHeader() []interface{} {
	return []interface{}{"ID", "Nombre", "Apellido", "Email", "Estado", "Días disponibles", "Áreas de interés"}
}

func TestParseVolunteers(t *testing.T) {
	raw := [][]interface{}{
		volunteerHeader(),
		{"v1", "Ana", "García", "ana@example.org", "active", `["lunes","miércoles"]`, "{deportes,cultura}"},
		{"v2", " Luis ", "", "", "inactive", "sábado", ""},
		{"", "", "", "", "", "", ""},
		{"v3", "Marta"}, // short row
	}

	volunteers, err := parseVolunteers(raw)
	require.NoError(t, err)
	require.Len(t, volunteers, 3)

	assert.Equal(t, db.Volunteer{
		ID:            "v1",
		FirstName:     "Ana",
		LastName:      "García",
		Email:         "ana@example.org",
		Status:        "active",
		AvailableDays: `["lunes","miércoles"]`,
		InterestAreas: "{deportes,cultura}",
	}, volunteers[0])

	assert.Equal(t, "Luis", volunteers[1].FirstName)
	assert.Equal(t, "sábado", volunteers[1].AvailableDays)

	assert.Equal(t, "v3", volunteers[2].ID)
	assert.Empty(t, volunteers[2].AvailableDays)
	assert.Empty(t, volunteers[2].InterestAreas)
}

func TestParseVolunteers_ColumnOrderIndependent(t *testing.T) {
	raw := [][]interface{}{
		{"Áreas de interés", "Estado", "Días disponibles", "Nombre", "ID"},
		{"arte", "active", "viernes", "Sofía", "v9"},
	}

	volunteers, err := parseVolunteers(raw)
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	assert.Equal(t, "v9", volunteers[0].ID)
	assert.Equal(t, "Sofía", volunteers[0].FirstName)
	assert.Equal(t, "viernes", volunteers[0].AvailableDays)
	assert.Equal(t, "arte", volunteers[0].InterestAreas)
}

func TestParseVolunteers_MissingColumn(t *testing.T) {
	raw := [][]interface{}{
		{"ID", "Nombre", "Estado", "Días disponibles"},
	}

	_, err := parseVolunteers(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Áreas de interés")
}

func TestVolunteerSheet_ListVolunteers(t *testing.T) {
	reader := &fakeReader{values: [][]interface{}{
		volunteerHeader(),
		{"v1", "Ana", "García", "", "active", "lunes", "deportes"},
	}}
	sheet := NewVolunteerSheet(reader, "sheet123", "Voluntarios")

	volunteers, err := sheet.ListVolunteers(context.Background())
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	assert.Equal(t, "sheet123", reader.gotSpreadsheetID)
	assert.Equal(t, "Voluntarios", reader.gotRange)
}

func TestVolunteerSheet_Errors(t *testing.T) {
	_, err := NewVolunteerSheet(&fakeReader{}, "s", "t").ListVolunteers(context.Background())
	assert.ErrorContains(t, err, "spreadsheet is empty")

	_, err = NewVolunteerSheet(&fakeReader{err: errors.New("quota exceeded")}, "s", "t").ListVolunteers(context.Background())
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestVolunteerSheet_GetVolunteer(t *testing.T) {
	reader := &fakeReader{values: [][]interface{}{
		volunteerHeader(),
		{"v1", "Ana", "García", "", "active", "lunes", "deportes"},
		{"v2", "Luis", "Pérez", "", "active", "martes", "arte"},
	}}
	sheet := NewVolunteerSheet(reader, "s", "t")

	v, err := sheet.GetVolunteer(context.Background(), "v2")
	require.NoError(t, err)
	assert.Equal(t, "Luis Pérez", v.DisplayName())

	_, err = sheet.GetVolunteer(context.Background(), "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}
