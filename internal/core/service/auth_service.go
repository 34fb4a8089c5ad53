package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorialhub/tutorial-platform/internal/api/metrics"
	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

const (
	defaultTokenTTL = 7 * 24 * time.Hour
	bcryptCost      = 12
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// AuthService implements registration, login, token verification and logout.
type AuthService struct {
	users     ports.UserRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:     users,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	if err := validateCredentials(username, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.mintToken(created)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	// An unknown email and a wrong password fail identically so the
	// response never reveals whether an account exists.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{Token: token, User: user}, nil
}

// VerifyToken resolves a bearer token to its user. Every failure collapses to
// ErrInvalidCredentials; the middleware decides whether that means 401 or an
// anonymous request.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, jti)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrInvalidCredentials
		}
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Logout adds the token's jti to the revocation list for as long as the token
// would otherwise remain valid.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	jti, _ := claims["jti"].(string)
	if jti == "" || s.revoker == nil {
		return nil
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return s.revoker.Revoke(ctx, jti, ttl)
}

func (s *AuthService) mintToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":  user.ID,
		"jti": newTokenID(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}

// newTokenID returns a random identifier embedded in each token so individual
// tokens can be revoked without a session table.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func validateCredentials(username, email, password string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	// Character counts, not bytes, so multibyte passwords get the same
	// limits the HTTP validator applies.
	if n := utf8.RuneCountInString(password); n < 6 || n > 100 {
		return fmt.Errorf("%w: password must be between 6 and 100 characters", domain.ErrInvalidInput)
	}
	return nil
}

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 3 || n > 30 {
		return fmt.Errorf("%w: username must be between 3 and 30 characters", domain.ErrInvalidInput)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username can only contain letters, numbers, underscores and hyphens", domain.ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	return nil
}
