package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	err = db.AutoMigrate(&identity.User{})
	require.NoError(t, err)
	return db
}

func newStoredUser(t *testing.T, repo *GormUserRepository, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Alice", email, "secret123", "user")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestGormUserRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormUserRepository(setupUserTestDB(t))
	user := newStoredUser(t, repo, "alice@example.com")

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, identity.RoleUser, found.Role)
}

func TestGormUserRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormUserRepository(setupUserTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	repo := NewGormUserRepository(setupUserTestDB(t))
	user := newStoredUser(t, repo, "alice@example.com")

	found, err := repo.FindByEmail(context.Background(), "  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	repo := NewGormUserRepository(setupUserTestDB(t))
	newStoredUser(t, repo, "alice@example.com")

	exists, err := repo.ExistsByEmail(context.Background(), "ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_Update(t *testing.T) {
	repo := NewGormUserRepository(setupUserTestDB(t))
	user := newStoredUser(t, repo, "alice@example.com")

	require.NoError(t, user.Rename("Alice Cooper"))
	require.NoError(t, repo.Update(context.Background(), user))

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", found.Name)
}
