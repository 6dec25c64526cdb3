package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/models"
)

func TestUserRepositoryCreateTranslatesDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	first := models.User{Name: "Rina", Email: "rina@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &first))

	// A second insert racing past the existence pre-check must surface as
	// gorm.ErrDuplicatedKey, not as a raw driver error.
	second := models.User{Name: "Rina", Email: "rina@example.com", PasswordHash: "x", Role: models.RoleUser}
	err := repo.Create(context.Background(), &second)
	require.Error(t, err)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepositoryDeleteUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Delete(context.Background(), 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
