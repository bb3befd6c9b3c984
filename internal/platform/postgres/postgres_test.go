package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRejectsMissingDirectory(t *testing.T) {
	err := Migrate("postgres://localhost:1/none?sslmode=disable", fstest.MapFS{}, "migrations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load migrations")
}
