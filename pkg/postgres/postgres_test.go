package postgres

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/parks-scoring/pkg/db"
)

// DB must satisfy the full data-source interface
var _ db.Database = (*DB)(nil)

func TestMigrationFiles_EmbeddedInOrder(t *testing.T) {
	files, err := migrationFiles(migrationsFS)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"001_create_activity.sql",
		"002_create_volunteer.sql",
		"003_create_participation.sql",
	}, files)
}

func TestMigrationFiles_SkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_b.sql":    {Data: []byte("SELECT 1")},
		"migrations/001_a.sql":    {Data: []byte("SELECT 1")},
		"migrations/README.md":    {Data: []byte("notes")},
		"migrations/nested/x.sql": {Data: []byte("SELECT 1")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func TestPendingMigrations(t *testing.T) {
	files := []string{"001_a.sql", "002_b.sql", "003_c.sql"}

	pending := pendingMigrations(files, map[string]bool{"001_a.sql": true})
	assert.Equal(t, []string{"002_b.sql", "003_c.sql"}, pending)

	pending = pendingMigrations(files, map[string]bool{"001_a.sql": true, "002_b.sql": true, "003_c.sql": true})
	assert.Empty(t, pending)
}

func TestGetActivity_NonUUIDIsNotFound(t *testing.T) {
	d := &DB{}

	_, err := d.GetActivity(context.Background(), "yoga")
	assert.ErrorIs(t, err, db.ErrNotFound)
}
