package user

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when no user matches a login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUsername is returned when adding a user whose username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrMasterAdmin is returned when deleting the seeded admin account.
	ErrMasterAdmin = errors.New("cannot delete master admin")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate returns the user matching the credential pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByCredentials(ctx, username, password)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return u, nil
}

// EnsureMasterAdmin seeds the default admin account when it does not exist.
// It reports whether a new account was created.
func (s *Service) EnsureMasterAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, MasterAdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("look up master admin: %w", err)
	}

	admin := &User{
		Username: MasterAdminUsername,
		Password: password,
		Role:     RoleAdmin,
		Name:     "System Admin",
	}
	if err := s.repo.Insert(ctx, admin); err != nil {
		return false, fmt.Errorf("seed master admin: %w", err)
	}
	return true, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Add creates a health-worker account. The role is always bhw: admin accounts
// are never created through the API.
func (s *Service) Add(ctx context.Context, name, username, password string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return ErrDuplicateUsername
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	return s.repo.Insert(ctx, &User{
		Name:     name,
		Username: username,
		Password: password,
		Role:     RoleBHW,
	})
}

func (s *Service) Delete(ctx context.Context, username string) error {
	if username == MasterAdminUsername {
		return ErrMasterAdmin
	}
	return s.repo.Delete(ctx, username)
}

// ResetPassword overwrites the stored password unconditionally; there is no
// current-password check because admins reset accounts for workers who have
// lost theirs.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	return s.repo.UpdatePassword(ctx, username, newPassword)
}
