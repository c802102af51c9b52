package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-admin-service/internal/domain/user"
	apperrors "user-admin-service/pkg/errors"
)

func setupTestRepo(t *testing.T) *UserRepoPG {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&UserSchema{}))

	return NewUserRepoPG(db, zaptest.NewLogger(t))
}

func mustCreate(t *testing.T, repo *UserRepoPG, name, email string) *user.User {
	t.Helper()

	created, err := repo.Create(context.Background(), &user.User{Name: name, Email: email})
	require.NoError(t, err)
	return created
}

func TestUserRepoPG_Create_MintsUUID(t *testing.T) {
	repo := setupTestRepo(t)

	created := mustCreate(t, repo, "Ann Smith", "ann@example.com")

	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.ID, 36)
	assert.Equal(t, "Ann Smith", created.Name)
	assert.Equal(t, "ann@example.com", created.Email)
}

func TestUserRepoPG_Create_NilUser(t *testing.T) {
	repo := setupTestRepo(t)

	created, err := repo.Create(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, created)
}

func TestUserRepoPG_Create_DuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreate(t, repo, "Ann Smith", "ann@example.com")

	_, err := repo.Create(context.Background(), &user.User{Name: "Ann Clone", Email: "ann@example.com"})

	assert.Error(t, err)
}

func TestUserRepoPG_GetByID(t *testing.T) {
	repo := setupTestRepo(t)
	created := mustCreate(t, repo, "Ann Smith", "ann@example.com")

	got, err := repo.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUserRepoPG_GetByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetByID(context.Background(), "missing")

	assert.Nil(t, got)
	require.Error(t, err)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepoPG_GetByEmail_AbsentIsNotError(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepoPG_Update_PartialFields(t *testing.T) {
	repo := setupTestRepo(t)
	created := mustCreate(t, repo, "Ann Smith", "ann@example.com")

	// Only the name changes; the email field is left untouched
	updated, err := repo.Update(context.Background(), &user.User{ID: created.ID, Name: "Annabel Smith"})

	require.NoError(t, err)
	assert.Equal(t, "Annabel Smith", updated.Name)
	assert.Equal(t, "ann@example.com", updated.Email)
}

func TestUserRepoPG_Update_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	updated, err := repo.Update(context.Background(), &user.User{ID: "missing", Name: "Ghost"})

	assert.Nil(t, updated)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepoPG_Delete_ReturnsRemovedRecord(t *testing.T) {
	repo := setupTestRepo(t)
	created := mustCreate(t, repo, "Ann Smith", "ann@example.com")

	deleted, err := repo.Delete(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", deleted.Name)

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.Error(t, err)
}

func TestUserRepoPG_Delete_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	deleted, err := repo.Delete(context.Background(), "missing")

	assert.Nil(t, deleted)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepoPG_List(t *testing.T) {
	repo := setupTestRepo(t)
	mustCreate(t, repo, "Ann Smith", "ann@example.com")
	mustCreate(t, repo, "Bo Jones", "bo@example.com")
	mustCreate(t, repo, "Cara Admin", "cara@example.com")

	tests := []struct {
		name        string
		query       string
		page        int64
		limit       int64
		expectError bool
		expectNames []string
		expectTotal int64
	}{
		{
			name:        "all users",
			page:        1,
			limit:       10,
			expectNames: []string{"Ann Smith", "Bo Jones", "Cara Admin"},
			expectTotal: 3,
		},
		{
			name:        "search by name",
			query:       "bo",
			page:        1,
			limit:       10,
			expectNames: []string{"Bo Jones"},
			expectTotal: 1,
		},
		{
			name:        "search by email",
			query:       "cara@example.com",
			page:        1,
			limit:       10,
			expectNames: []string{"Cara Admin"},
			expectTotal: 1,
		},
		{
			name:        "second page",
			page:        2,
			limit:       2,
			expectNames: []string{"Cara Admin"},
			expectTotal: 3,
		},
		{
			name:        "injection attempt rejected",
			query:       "ann UNION SELECT * FROM users",
			page:        1,
			limit:       10,
			expectError: true,
		},
		{
			name:        "or condition rejected",
			query:       "ann OR 1=1",
			page:        1,
			limit:       10,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.List(context.Background(), tt.query, tt.page, tt.limit)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid search query")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectTotal, total)

			names := make([]string, len(users))
			for i, u := range users {
				names[i] = u.Name
			}
			// List orders by name
			assert.Equal(t, tt.expectNames, names)
		})
	}
}
