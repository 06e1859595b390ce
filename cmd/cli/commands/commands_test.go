package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
)

func TestRiskColor(t *testing.T) {
	tests := []struct {
		risk     model.RiskLevel
		expected string
	}{
		{model.RiskHigh, "RED"},
		{model.RiskMedium, "YELLOW"},
		{model.RiskLow, "GREEN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.risk), func(t *testing.T) {
			assert.Equal(t, tt.expected, riskColor(tt.risk, "RED", "YELLOW", "GREEN"))
		})
	}
}

func TestRecommendationColor(t *testing.T) {
	assert.Equal(t, "RED", recommendationColor(model.RecommendationReject, "RED", "YELLOW", "GREEN"))
	assert.Equal(t, "YELLOW", recommendationColor(model.RecommendationReview, "RED", "YELLOW", "GREEN"))
	assert.Equal(t, "GREEN", recommendationColor(model.RecommendationApprove, "RED", "YELLOW", "GREEN"))
}

func TestParseDateFlag(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	date, err := parseDateFlag("", madrid)
	require.NoError(t, err)
	assert.Nil(t, date)

	date, err = parseDateFlag("2024-06-15", madrid)
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, time.Saturday, date.Weekday())
	assert.Equal(t, madrid, date.Location())

	_, err = parseDateFlag("15/06/2024", madrid)
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestFinancialInputFromFlags(t *testing.T) {
	cmd := EstimateViabilityCmd(&AppContext{})
	require.NoError(t, cmd.ParseFlags([]string{"--price", "12.5", "--capacity", "30"}))

	input, err := financialInputFromFlags(cmd)
	require.NoError(t, err)

	require.NotNil(t, input.Price)
	assert.Equal(t, 12.5, *input.Price)
	require.NotNil(t, input.Capacity)
	assert.Equal(t, 30, *input.Capacity)
	assert.Nil(t, input.DurationMinutes)
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"simple", "checkParticipation v1 a1", []string{"checkParticipation", "v1", "a1"}, false},
		{"extra spaces", "  reviewPending   ", []string{"reviewPending"}, false},
		{"double quotes", `estimateViability --price "12.5"`, []string{"estimateViability", "--price", "12.5"}, false},
		{"quoted spaces", `findVolunteers 'huerto comunitario'`, []string{"findVolunteers", "huerto comunitario"}, false},
		{"empty quotes", `checkParticipation "" a1`, []string{"checkParticipation", "", "a1"}, false},
		{"unclosed", `findVolunteers "huerto`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestRunSession(t *testing.T) {
	var got []string
	echo := &cobra.Command{
		Use:  "echo <word>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loud, _ := cmd.Flags().GetBool("loud")
			word := args[0]
			if loud {
				word = strings.ToUpper(word)
			}
			got = append(got, word)
			return nil
		},
	}
	echo.Flags().Bool("loud", false, "")

	input := strings.NewReader("echo --loud hola\necho adios\necho\nunknown\nexit\necho never\n")
	err := runSession(input, map[string]*cobra.Command{"echo": echo})
	require.NoError(t, err)

	// Flags reset between runs; the arg-count error and the unknown command are reported, not fatal
	assert.Equal(t, []string{"HOLA", "adios"}, got)
}

func TestSessionCommands(t *testing.T) {
	root := &cobra.Command{Use: "cli"}
	app := &AppContext{}
	root.AddCommand(ReviewPendingCmd(app), MigrateCmd(app), InteractiveCmd(app))

	commands := sessionCommands(root)
	assert.Len(t, commands, 2)
	assert.Contains(t, commands, "reviewPending")
	assert.Contains(t, commands, "migrate")
	assert.NotContains(t, commands, "interactive")
}
