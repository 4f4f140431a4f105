package integration

import (
	"testing"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/migration"
	"github.com/leduxro-prog/erp-dashboard-sub010/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_RoundTrip(t *testing.T) {
	tdb := NewSharedTestDB(t)

	m, err := migration.NewFromFS(tdb.SqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	require.NoError(t, m.Steps(-1))
	assert.False(t, tdb.DB.Migrator().HasTable("customer_tiers"))
	assert.True(t, tdb.DB.Migrator().HasTable("promotions"))

	require.NoError(t, m.Up())
	assert.True(t, tdb.DB.Migrator().HasTable("customer_tiers"))
	assert.True(t, tdb.DB.Migrator().HasTable("customer_tier_history"))

	// a second Up is a no-op
	require.NoError(t, m.Up())
}
