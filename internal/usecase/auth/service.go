package auth

import (
	"context"
	"errors"
	"strings"

	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type RegisterInput struct {
	Username string
	Password string
}

type SignupInput struct {
	Username  string
	Password  string
	Name      string
	Email     string
	Education string
}

type LoginInput struct {
	Username string
	Password string
}

// Service owns credential checks. It never issues tokens.
type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidInput
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}
	return sanitizeUser(u), nil
}

// Signup creates the user and the profile it owns in one step.
func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, profile.Profile, error) {
	username := normalizeUsername(in.Username)
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if username == "" || in.Password == "" || name == "" || email == "" {
		return user.User{}, profile.Profile{}, ErrInvalidInput
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, profile.Profile{}, ErrInternal
	}

	u, p, err := s.users.CreateWithProfile(ctx, username, hash, profile.Fields{
		Name:      name,
		Email:     email,
		Education: strings.TrimSpace(in.Education),
	})
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, profile.Profile{}, ErrUsernameTaken
		}
		return user.User{}, profile.Profile{}, errors.Join(ErrInternal, err)
	}
	return sanitizeUser(u), p, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
