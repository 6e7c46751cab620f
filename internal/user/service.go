package user

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/arkadyv/noteboard/internal/httperr"
	"github.com/arkadyv/noteboard/internal/user/entity"
	userrepo "github.com/arkadyv/noteboard/internal/user/repo"
	"github.com/arkadyv/noteboard/pkg/utilities"
)

// PasswordHasher defines the minimal hashing interface (abstract so we can
// swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation. Verify is constant-time by construction.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Repository is the slice of the user store this service needs.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService orchestrates registration and password authentication.
type UserService struct {
	repo   Repository
	hasher PasswordHasher
}

func NewUserService(repo Repository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Register validates the input in order (fail fast), hashes the password and
// persists a new user. Validation failures carry the exact client messages.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, httperr.Validation("Missing required fields: username, password or name")
	}
	if !emailRegex.MatchString(email) {
		return nil, httperr.Validation("Invalid email address")
	}
	if len(password) < 6 {
		return nil, httperr.Validation("Password must be at least 6 characters long")
	}
	if len(name) < 2 {
		return nil, httperr.Validation("Name must be at least 2 characters long")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		UID:          utilities.NewUserID(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, httperr.Validation("Email already registered")
		}
		return nil, err
	}
	return u, nil
}

// Login validates the input and verifies the password against the stored
// hash. The password length check on login mirrors registration on purpose.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, httperr.Validation("Missing required fields: username or password")
	}
	if !emailRegex.MatchString(email) {
		return nil, httperr.Validation("Invalid email address")
	}
	if len(password) < 6 {
		return nil, httperr.Validation("Password must be at least 6 characters long")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.Validation("User does not exist")
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, httperr.Validation("Incorrect password")
	}
	return u, nil
}
