package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-admin-service/internal/domain/user"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, query string, page, limit int64) ([]domain.User, int64, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

// Test helper to create a usecase with a mock repo and no cache
func setupTestUsecase(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	logger := zaptest.NewLogger(t)
	uc := New(mockRepo, nil, logger)
	return uc, mockRepo
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	}

	// Mock GetByEmail returns nil (email not found)
	mockRepo.On("GetByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == req.Name && u.Email == req.Email
	})).Return(&domain.User{ID: "b5c7a222-1f59-4f9a-9c5b-0d8f3fdc2e11", Name: req.Name, Email: req.Email}, nil)

	resp, err := uc.CreateUser(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "b5c7a222-1f59-4f9a-9c5b-0d8f3fdc2e11", resp.User.ID)
	assert.Equal(t, "John Doe", resp.User.Name)
	assert.Equal(t, "john@example.com", resp.User.Email)

	mockRepo.AssertExpectations(t)
}

func TestCreateUser_ValidationError_NameRequired(t *testing.T) {
	uc, _ := setupTestUsecase(t)

	resp, err := uc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "",
		Email: "john@example.com",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Name is required")
}

func TestCreateUser_ValidationError_NameTooShort(t *testing.T) {
	uc, _ := setupTestUsecase(t)

	resp, err := uc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "Jo", // Too short (<3)
		Email: "john@example.com",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Name must be at least 3 characters")
}

func TestCreateUser_ValidationError_EmailInvalid(t *testing.T) {
	uc, _ := setupTestUsecase(t)

	resp, err := uc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "John Doe",
		Email: "invalid-email",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "Email must be a valid email")
}

func TestCreateUser_EmailAlreadyExists(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	}

	mockRepo.On("GetByEmail", ctx, req.Email).
		Return(&domain.User{ID: "existing", Name: "Other", Email: req.Email}, nil)

	resp, err := uc.CreateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "email already exists")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateUser_EmailCheckFails(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "john@example.com").Return(nil, errors.New("db down"))

	resp, err := uc.CreateUser(ctx, CreateUserRequest{Name: "John Doe", Email: "john@example.com"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to validate email uniqueness")
}

// ==================== UPDATE USER TESTS ====================

func TestUpdateUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	req := UpdateUserRequest{
		ID:   "id-1",
		Name: "Jane Doe",
	}

	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == req.ID && u.Name == req.Name
	})).Return(&domain.User{ID: "id-1", Name: "Jane Doe", Email: "jane@example.com"}, nil)

	resp, err := uc.UpdateUser(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Jane Doe", resp.User.Name)
	assert.Equal(t, "jane@example.com", resp.User.Email)

	mockRepo.AssertExpectations(t)
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	req := UpdateUserRequest{
		ID:    "id-1",
		Email: "taken@example.com",
	}

	mockRepo.On("GetByEmail", ctx, req.Email).
		Return(&domain.User{ID: "id-2", Email: req.Email}, nil)

	resp, err := uc.UpdateUser(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "email already exists")
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateUser_SameUserKeepsEmail(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	req := UpdateUserRequest{
		ID:    "id-1",
		Email: "jane@example.com",
	}

	// Finding the user's own record is not a conflict
	mockRepo.On("GetByEmail", ctx, req.Email).
		Return(&domain.User{ID: "id-1", Email: req.Email}, nil)
	mockRepo.On("Update", ctx, mock.Anything).
		Return(&domain.User{ID: "id-1", Name: "Jane", Email: req.Email}, nil)

	resp, err := uc.UpdateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "id-1", resp.User.ID)
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "id-1").
		Return(&domain.User{ID: "id-1", Name: "Ann", Email: "ann@example.com"}, nil)

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: "id-1"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	// The removed record comes back so callers can reference its name
	assert.Equal(t, "Ann", resp.User.Name)

	mockRepo.AssertExpectations(t)
}

func TestDeleteUser_EmptyID(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)

	resp, err := uc.DeleteUser(context.Background(), DeleteUserRequest{ID: ""})

	assert.Error(t, err)
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestDeleteUser_RepoError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "id-1").Return(nil, errors.New("db down"))

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: "id-1"})

	assert.Error(t, err)
	assert.Nil(t, resp)
}

// ==================== GET USER TESTS ====================

func TestGetUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "id-1").
		Return(&domain.User{ID: "id-1", Name: "Ann", Email: "ann@example.com"}, nil)

	resp, err := uc.GetUser(ctx, GetUserRequest{ID: "id-1"})

	require.NoError(t, err)
	assert.Equal(t, "Ann", resp.Name)
}

func TestGetUser_EmptyID(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)

	resp, err := uc.GetUser(context.Background(), GetUserRequest{ID: ""})

	assert.Error(t, err)
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "GetByID")
}

// ==================== LIST USERS TESTS ====================

func TestListUsers_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	users := []domain.User{
		{ID: "1", Name: "Ann", Email: "ann@example.com"},
		{ID: "2", Name: "Bo", Email: "bo@example.com"},
	}
	mockRepo.On("List", ctx, "", int64(1), int64(10)).Return(users, int64(2), nil)

	resp, err := uc.ListUsers(ctx, ListUsersRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "Ann", resp.Users[0].Name)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, int64(1), resp.Pagination.TotalPages)
}

func TestListUsers_DefaultsApplied(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx, "", int64(1), int64(100)).Return([]domain.User{}, int64(0), nil)

	// Page 0 becomes 1, limit 500 is capped at 100
	_, err := uc.ListUsers(ctx, ListUsersRequest{Page: 0, Limit: 500})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestListUsers_InvalidSearchQuery(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx, "x OR 1=1", int64(1), int64(10)).
		Return(nil, int64(0), errors.New("invalid search query: search query contains invalid characters"))

	resp, err := uc.ListUsers(ctx, ListUsersRequest{Query: "x OR 1=1"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "invalid search query")
}
