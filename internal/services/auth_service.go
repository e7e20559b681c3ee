package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByEmail(email string) (*User, error)
	AddUser(u *User) error
	AddTenant(t *Tenant) error
}

// TokenSigner mints a signed session token for the given identity.
type TokenSigner func(userID, tenantID, email string, ttl time.Duration) (string, error)

const minPasswordLen = 8

// AuthService handles account registration and login. Sessions are stateless:
// the signed token carries the user and tenant identity until it expires.
type AuthService struct {
	store      AuthStore
	now        func() time.Time
	idGen      func(prefix string) string
	signToken  TokenSigner
	sessionTTL time.Duration
}

// Session is an issued login session.
type Session struct {
	Token     string
	UserID    string
	TenantID  string
	ExpiresAt time.Time
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:      store,
		now:        func() time.Time { return time.Now().UTC() },
		idGen:      func(prefix string) string { return prefix + "_" + shortID(10) },
		signToken:  signer,
		sessionTTL: 14 * 24 * time.Hour,
	}
}

// Register creates a tenant with its first user and issues a session.
func (s *AuthService) Register(email, password, tenantName string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, NewInvalidError("password must be at least 8 characters")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("an account with this email already exists")
	}
	tenant := &Tenant{ID: s.idGen("tn"), Name: strings.TrimSpace(tenantName)}
	if err := s.store.AddTenant(tenant); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{ID: s.idGen("usr"), Email: email, PassHash: hash, TenantID: tenant.ID, CreatedAt: s.now()}
	if err := s.store.AddUser(user); err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

// Login verifies credentials and issues a fresh session. Unknown emails and
// wrong passwords get the same answer.
func (s *AuthService) Login(email, password string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, NewUnauthorizedError("email or password is incorrect")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)) != nil {
		return nil, NewUnauthorizedError("email or password is incorrect")
	}
	return s.issueSession(u)
}

func (s *AuthService) issueSession(u *User) (*Session, error) {
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.TenantID, u.Email, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		UserID:    u.ID,
		TenantID:  u.TenantID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", NewInvalidError("a valid email address is required")
	}
	return email, nil
}
