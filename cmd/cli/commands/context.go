package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/internal/config"
	"github.com/jakechorley/parks-scoring/pkg/core/compatibility"
	"github.com/jakechorley/parks-scoring/pkg/core/viability"
	"github.com/jakechorley/parks-scoring/pkg/db"
	"github.com/jakechorley/parks-scoring/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Env      string
	Postgres *postgres.DB

	// Activities always come from postgres; volunteers may come from a spreadsheet
	Activities db.ActivityStore
	Volunteers db.VolunteerStore

	Estimator *viability.Estimator
	Checker   *compatibility.Checker
	Location  *time.Location
	Logger    *zap.Logger
	Ctx       context.Context
}
