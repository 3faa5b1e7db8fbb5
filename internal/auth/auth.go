// Package auth handles accounts: password hashing, signup, login and the
// bearer tokens the API accepts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/store"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrInvalidToken = errors.New("invalid or expired token")
)

// Token is what signup and login hand back to the client.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

type Claims struct {
	jwt.RegisteredClaims
}

type Service struct {
	users  store.UserRepo
	secret []byte
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

func NewService(users store.UserRepo, secret string, ttl time.Duration, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With("component", "auth"),
		now:    time.Now,
	}
}

// Signup creates an account and logs it in.
func (s *Service) Signup(ctx context.Context, email, username, password string) (*Token, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", quiz.ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", quiz.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", quiz.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password is too long", quiz.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := quiz.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", quiz.ErrValidation)
		}
		return nil, err
	}
	s.log.Info("user created", "user_id", u.ID)
	return s.issue(u)
}

// Login checks a password and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(*u)
}

func (s *Service) issue(u quiz.User) (*Token, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, TokenType: "bearer", Username: u.Username}, nil
}

// Verify parses a bearer token and returns the user ID it was issued to.
func (s *Service) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
