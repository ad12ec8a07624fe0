package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/construction-sim/internal/adapters/persistence"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory session store that is closed when
// the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// NewTestSessionRepository returns a GORM session repository on its own
// in-memory store, stamping rows with a mock clock at FixedStart
func NewTestSessionRepository(t *testing.T) *persistence.GormSessionRepository {
	t.Helper()
	return persistence.NewGormSessionRepository(NewTestDB(t), shared.NewMockClock(FixedStart))
}
