package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"community-directory/internal/auth"
	"community-directory/internal/domain"
	"community-directory/internal/repository"
)

const defaultStoreTimeout = 5 * time.Second

// AuthService orchestrates sign-up, sign-in, sign-out, and caller identity
// resolution. It composes the password hasher, the token codec, and the user
// store; cookie handling stays at the HTTP layer.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string, role domain.Role) (*domain.PublicUser, string, error)
	SignIn(ctx context.Context, email, password string) (*domain.PublicUser, string, error)
	CurrentSubject(token string) (string, bool)
	GetByID(ctx context.Context, id string) (*domain.PublicUser, error)
}

type authService struct {
	users        repository.UserRepository
	hasher       *auth.PasswordHasher
	tokens       *auth.TokenCodec
	logger       *logrus.Logger
	storeTimeout time.Duration
}

func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenCodec, logger *logrus.Logger, storeTimeout time.Duration) AuthService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &authService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
		storeTimeout: storeTimeout,
	}
}

func (s *authService) SignUp(ctx context.Context, name, email, password string, role domain.Role) (*domain.PublicUser, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return nil, "", auth.ErrMissingFields
	}
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, "", auth.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.users.Create(storeCtx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", auth.ErrDuplicateAccount
		}
		return nil, "", s.storeFailure("create user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	public := user.Public()
	return &public, token, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*domain.PublicUser, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	user, err := s.users.GetByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// same outcome as a wrong password, no account enumeration
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", s.storeFailure("lookup user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	public := user.Public()
	return &public, token, nil
}

// CurrentSubject resolves the caller's identity from a session token. Any
// malformed, forged, or expired token resolves to anonymous.
func (s *authService) CurrentSubject(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	claims := s.tokens.Verify(token)
	if claims == nil {
		return "", false
	}
	return claims.Subject, true
}

func (s *authService) GetByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	user, err := s.users.GetByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, s.storeFailure("lookup user", err)
	}
	public := user.Public()
	return &public, nil
}

// storeFailure logs the underlying error server-side and returns the opaque
// storage error the HTTP layer maps to a generic 500.
func (s *authService) storeFailure(op string, err error) error {
	if s.logger != nil {
		s.logger.WithError(err).Errorf("user store: %s", op)
	}
	return auth.ErrStorageUnavailable
}
