package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	repo *repository.Repository

	// Bounds concurrent bcrypt work so a burst of signups cannot occupy
	// every scheduler thread at once.
	hashSem *semaphore.Weighted
}

func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{
		repo:    repo,
		hashSem: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Register validates the signup fields, hashes the password and stores the
// user. The stored credential is always a bcrypt digest, never the plaintext.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (int, error) {
	if name == "" || email == "" || password == "" {
		return 0, apperr.New(apperr.Validation, "All fields required")
	}
	if !emailPattern.MatchString(email) {
		return 0, apperr.New(apperr.Validation, "Invalid email")
	}
	if len(password) < 8 {
		return 0, apperr.New(apperr.Validation, "Password must be at least 8 characters")
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return 0, err
	}
	return s.repo.InsertUser(ctx, name, email, hash)
}

// LoginUser returns the user's id when the password matches its stored hash.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (int, error) {
	if email == "" || password == "" {
		return 0, apperr.New(apperr.Validation, "Email and password required")
	}

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	if err := s.comparePassword(ctx, user.PasswordHash, password); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// LoginAdmin checks the given credential against the seeded admin row.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperr.New(apperr.Validation, "Username and password required")
	}

	admin, err := s.repo.AdminByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.comparePassword(ctx, admin.PasswordHash, password)
}

// SeedAdmin inserts the administrator credential if it is not already present.
// Re-running it never changes an existing admin's stored hash.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	if _, err := s.repo.AdminByUsername(ctx, username); err == nil {
		return nil
	} else if apperr.KindOf(err) != apperr.NotFound {
		return err
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return err
	}
	return s.repo.InsertAdminIfAbsent(ctx, username, hash)
}

func (s *AuthService) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) comparePassword(ctx context.Context, hash, password string) error {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSem.Release(1)

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperr.New(apperr.InvalidCredentials, "Wrong password")
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
