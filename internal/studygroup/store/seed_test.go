package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studygroups/internal/studygroup/models"
	"studygroups/internal/studygroup/store"
	"studygroups/internal/studygroup/store/memory"
)

func TestSeedBootstrapStudyGroup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("seeds an empty store", func(t *testing.T) {
		s := memory.NewInMemory()
		group, err := store.SeedBootstrapStudyGroup(ctx, s, now)
		require.NoError(t, err)
		require.NotNil(t, group)

		found, err := s.FindStudyGroupByID(ctx, store.BootstrapGroupID)
		require.NoError(t, err)
		assert.Equal(t, store.BootstrapGroupName, found.Name())
		assert.Equal(t, models.SubjectMath, found.Subject())
		assert.Equal(t, now, found.CreateDate())
		require.Len(t, found.Users, 2)
		assert.Equal(t, "Maria", found.Users[0].Name)
		assert.Equal(t, "João", found.Users[1].Name)
	})

	t.Run("leaves a populated store alone", func(t *testing.T) {
		s := memory.NewInMemory()
		_, err := store.SeedBootstrapStudyGroup(ctx, s, now)
		require.NoError(t, err)

		group, err := store.SeedBootstrapStudyGroup(ctx, s, now)
		require.NoError(t, err)
		assert.Nil(t, group)

		groups, err := s.ListStudyGroups(ctx)
		require.NoError(t, err)
		assert.Len(t, groups, 1)
	})
}
