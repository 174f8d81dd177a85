package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// Session is the resolved identity for a request or a fresh login: the
// account plus its role and subscription. Role and subscription resolution
// are independent; either failing falls back to its safe default (baseline
// role, no subscription) without affecting the other.
type Session struct {
	User         *domain.User
	Role         domain.Role
	Subscription *domain.Subscription
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, session *Session, err error)
	// ResolveSession loads the user, role and subscription for a user id.
	// It is called on login and per authenticated request, so role changes
	// take effect on the next request, not the next login.
	ResolveSession(ctx context.Context, userID string) (*Session, error)
	// ResolveRole returns the user's role, defaulting to the baseline role
	// when no role row exists or the lookup fails.
	ResolveRole(ctx context.Context, userID string) domain.Role
	GetJWTSecret() string
}

// --- Service Implementation ---

type authService struct {
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	subRepo       repository.SubscriptionRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	subRepo repository.SubscriptionRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		subRepo:       subRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new account creation. It never creates a role row:
// a fresh account resolves to the baseline role by absence.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a user and returns a signed token together with the
// fully resolved session. Role and subscription are resolved before Login
// returns, so a just-signed-in caller never sees baseline-role state for an
// account that has a role row.
func (s *authService) Login(ctx context.Context, email, password string) (string, *Session, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	session, err := s.ResolveSession(ctx, user.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// ResolveSession loads the account and resolves role and subscription.
func (s *authService) ResolveSession(ctx context.Context, userID string) (*Session, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	session := &Session{
		User: user,
		Role: s.ResolveRole(ctx, userID),
	}

	// Subscription miss is "no subscription", not an error, and it never
	// blocks role resolution (or vice versa).
	sub, err := s.subRepo.GetByUserID(ctx, oid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("WARN: subscription lookup failed for %s: %v", userID, err)
	}
	session.Subscription = sub

	return session, nil
}

// ResolveRole returns the user's role. Any miss or failure resolves to the
// baseline role: fail-open to least privilege.
func (s *authService) ResolveRole(ctx context.Context, userID string) domain.Role {
	oid, err := parseObjectID(userID)
	if err != nil {
		return domain.BaselineRole
	}
	row, err := s.roleRepo.Get(ctx, oid)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: role lookup failed for %s, using baseline: %v", userID, err)
		}
		return domain.BaselineRole
	}
	if !row.Role.Valid() {
		return domain.BaselineRole
	}
	return row.Role
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload. The token carries the
// identity only; the role is re-resolved from the store on every request.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "workout-planner",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
