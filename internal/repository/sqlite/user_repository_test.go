package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-directory/internal/domain"
	"community-directory/internal/repository"
)

func openTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func testUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         "Alice",
		Email:        email,
		PasswordHash: "$2a$04$fakefakefakefakefakefake",
		Role:         domain.RoleMember,
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip by email and id", func(t *testing.T) {
		repo := openTestRepo(t)
		user := testUser("alice@example.com")
		require.NoError(t, repo.Create(ctx, user))

		byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, domain.RoleMember, byEmail.Role)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", byID.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := openTestRepo(t)
		require.NoError(t, repo.Create(ctx, testUser("alice@example.com")))

		err := repo.Create(ctx, testUser("alice@example.com"))
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("unknown keys report not found", func(t *testing.T) {
		repo := openTestRepo(t)
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = repo.GetByID(ctx, "missing-id")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
