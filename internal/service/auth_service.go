package service

import (
	"context"
	"errors"
	"log"

	"cart-api/internal/domain"
	"cart-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// CredentialVerifier turns a password into its stored form and checks a
// login attempt against it. Keeping this behind an interface lets a hashed
// scheme replace plaintext without touching the handlers or the repository.
type CredentialVerifier interface {
	Seal(password string) (string, error)
	Verify(stored, given string) bool
}

// PlaintextVerifier stores and compares passwords as received. This mirrors
// the legacy data and is only suitable behind a trusted boundary; prefer
// BcryptVerifier for new deployments.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Seal(password string) (string, error) { return password, nil }

func (PlaintextVerifier) Verify(stored, given string) bool { return stored == given }

type BcryptVerifier struct{}

func (BcryptVerifier) Seal(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, given string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}

type AuthService struct {
	users    repository.UserRepository
	verifier CredentialVerifier
}

func NewAuthService(users repository.UserRepository, verifier CredentialVerifier) *AuthService {
	return &AuthService{
		users:    users,
		verifier: verifier,
	}
}

// Register creates an account and returns its id. The email must not be in
// use; the unique index backs up this check for concurrent registrations.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return "", repository.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		log.Printf("repo find user error: %v \n", err)
		return "", err
	}

	sealed, err := s.verifier.Seal(password)
	if err != nil {
		return "", err
	}

	id, err := s.users.Insert(ctx, &domain.User{
		Email:    email,
		Password: sealed,
		Name:     name,
	})
	if err != nil && !errors.Is(err, repository.ErrEmailTaken) {
		log.Printf("repo insert user error: %v \n", err)
	}
	return id, err
}

// Login checks the credentials and returns the account on success. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Printf("repo find user error: %v \n", err)
		return nil, err
	}

	if !s.verifier.Verify(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
