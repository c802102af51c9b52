package directory

import (
	"context"

	"go.uber.org/zap"

	domain "user-admin-service/internal/domain/user"
	"user-admin-service/internal/usecase/user"
)

// listPageLimit bounds how many records the screen loads per page when
// flattening the paginated backend list.
const listPageLimit = 100

// Service adapts the user usecase layer to the UserDirectory contract for
// in-process deployments.
type Service struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewService creates a usecase-backed UserDirectory.
func NewService(uc user.Usecase, log *zap.Logger) *Service {
	return &Service{uc: uc, log: log}
}

// ListUsers returns every user record, walking backend pages in order.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	var all []domain.User
	for page := int64(1); ; page++ {
		resp, err := s.uc.ListUsers(ctx, user.ListUsersRequest{Page: page, Limit: listPageLimit})
		if err != nil {
			return nil, err
		}
		for _, u := range resp.Users {
			all = append(all, domain.User{ID: u.ID, Name: u.Name, Email: u.Email})
		}
		if int64(len(resp.Users)) < listPageLimit {
			return all, nil
		}
	}
}

// CreateUser creates a user and returns the created record.
func (s *Service) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	resp, err := s.uc.CreateUser(ctx, user.CreateUserRequest{Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email}, nil
}

// UpdateUser updates a user and returns the updated record.
func (s *Service) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	resp, err := s.uc.UpdateUser(ctx, user.UpdateUserRequest{ID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email}, nil
}

// DeleteUser deletes a user and returns the removed record.
func (s *Service) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	resp, err := s.uc.DeleteUser(ctx, user.DeleteUserRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email}, nil
}
