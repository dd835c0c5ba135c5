package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
)

// UpdateParams carries the optional fields of a partial update. Role is not
// updatable: no endpoint changes a role after creation.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
}

// Service implements registration, login and the ownership-scoped CRUD
// operations over the user repository.
type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The stored role defaults to "user";
// requesting "admin" is honored only when callerRole is already admin,
// otherwise the request is rejected with common.ErrorForbidden. A duplicate
// (normalized) email yields common.ErrorAlreadyExists, whether caught by the
// lookup or by the unique index when two registrations race.
func (s *Service) Register(ctx context.Context, name, email, password, requestedRole, callerRole string) (*User, error) {

	role := auth.RoleUser
	if requestedRole == auth.RoleAdmin {
		if callerRole != auth.RoleAdmin {
			return nil, common.ErrorForbidden
		}
		role = auth.RoleAdmin
	}

	email = NormalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a bearer token. An unknown email
// yields common.ErrorNotFound, a wrong password common.ErrorUnauthorized;
// the two outcomes are deliberately distinct, matching the public API
// contract.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Get returns the user with the given id. The ownership policy is
// re-checked here even though the role gate already ran: both layers
// enforce the same invariant through auth.CanAccess.
func (s *Service) Get(ctx context.Context, claims *auth.Claims, id string) (*User, error) {

	if !auth.CanAccess(claims.Role, claims.UserID, id) {
		return nil, common.ErrorForbidden
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}

// Update applies the supplied partial fields and persists the record.
// A new password is re-hashed before storage; the stored digest is never
// overwritten with plaintext.
func (s *Service) Update(ctx context.Context, claims *auth.Claims, id string, params UpdateParams) (*User, error) {

	if !auth.CanAccess(claims.Role, claims.UserID, id) {
		return nil, common.ErrorForbidden
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = NormalizeEmail(*params.Email)
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// Delete removes the user with the given id.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, id string) error {

	if !auth.CanAccess(claims.Role, claims.UserID, id) {
		return common.ErrorForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error fetching user: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	return nil
}
