// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"workorders/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated in-memory database private to the calling test.
// The connection is closed when the test finishes.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=on", name, uuid.NewString())

	db, err := postgres.Open(postgres.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
