package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GetPlan(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	planID := factory.CreatePlan(t, "Premium", 60.00, 90)

	t.Run("existing plan", func(t *testing.T) {
		got, err := storage.GetPlan(context.Background(), planID)
		require.NoError(t, err)
		assert.Equal(t, "Premium", got.Name)
		assert.InDelta(t, 60.00, got.Price, 0.001)
		assert.Equal(t, 90, got.DurationDays)
	})

	t.Run("missing plan yields sql.ErrNoRows", func(t *testing.T) {
		_, err := storage.GetPlan(context.Background(), NewMemberID())
		require.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestStorage_ListPlans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	factory.CreatePlan(t, "Elite", 95.00, 365)
	factory.CreatePlan(t, "Basico", 25.00, 30)
	factory.CreatePlan(t, "Estandar", 40.00, 30)

	got, err := storage.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	// По возрастанию цены.
	assert.Equal(t, "Basico", got[0].Name)
	assert.Equal(t, "Estandar", got[1].Name)
	assert.Equal(t, "Elite", got[2].Name)
}
