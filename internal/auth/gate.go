// Package auth issues and verifies operator credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/model"
)

const (
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLen = 72
)

var errBadLogin = errors.New("invalid email or password")

type adminStore interface {
	CreateAdmin(ctx context.Context, admin *model.AdminAccount) error
	GetAdminByEmail(ctx context.Context, email string) (model.AdminAccount, error)
	GetAdminByID(ctx context.Context, id string) (model.AdminAccount, error)
}

// Options configure a Gate.
type Options struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Gate authenticates operators and authorizes their credentials.
type Gate struct {
	store  adminStore
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	cost   int
	log    *zap.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// NewGate creates a Gate.
func NewGate(s adminStore, opts Options, log *zap.Logger) *Gate {
	g := &Gate{
		store:  s,
		secret: opts.Secret,
		issuer: opts.Issuer,
		ttl:    opts.TTL,
		now:    opts.Now,
		cost:   opts.BcryptCost,
		log:    log,
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.ttl <= 0 {
		g.ttl = 24 * time.Hour
	}
	if g.cost == 0 {
		g.cost = bcrypt.DefaultCost
	}
	return g
}

// Login exchanges an email and password for a signed token. Unknown emails and
// wrong passwords fail identically.
func (g *Gate) Login(ctx context.Context, email, password string) (Token, error) {
	email = normalizeEmail(email)
	admin, err := g.store.GetAdminByEmail(ctx, email)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			return Token{}, err
		}
		// Burn the same time a real comparison would take.
		_ = bcrypt.CompareHashAndPassword(g.dummy(), []byte(password))
		g.log.Info("login rejected", zap.String("reason", "unknown email"))
		return Token{}, apperr.Unauthorized(errBadLogin)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		g.log.Info("login rejected", zap.String("reason", "password mismatch"), zap.String("admin_id", admin.ID))
		return Token{}, apperr.Unauthorized(errBadLogin)
	}

	now := g.now().UTC().Truncate(time.Second)
	exp := now.Add(g.ttl)
	jti, err := uuid.NewRandom()
	if err != nil {
		return Token{}, fmt.Errorf("generate token id: %w", err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti.String(),
		},
		Email: admin.Email,
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	g.log.Info("operator logged in", zap.String("admin_id", admin.ID))
	return Token{AccessToken: signed, TokenType: "bearer", ExpiresAt: exp}, nil
}

// Authorize verifies cred and returns the operator it belongs to.
func (g *Gate) Authorize(ctx context.Context, cred Credential) (Principal, error) {
	raw := strings.TrimSpace(string(cred))
	if raw == "" {
		return Principal{}, apperr.Unauthorized(errors.New("credential is required"))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Principal{}, apperr.Unauthorized(mapJWTError(err))
	}

	if parsed.Issuer != g.issuer {
		return Principal{}, apperr.Unauthorized(errors.New("token issuer mismatch"))
	}
	if parsed.ExpiresAt == nil {
		return Principal{}, apperr.Unauthorized(errors.New("token exp is required"))
	}
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(g.now().UTC()) {
		return Principal{}, apperr.Unauthorized(errors.New("token is expired"))
	}
	if parsed.Subject == "" {
		return Principal{}, apperr.Unauthorized(errors.New("token sub is required"))
	}

	admin, err := g.store.GetAdminByID(ctx, parsed.Subject)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Principal{}, apperr.Unauthorized(errors.New("account no longer exists"))
		}
		return Principal{}, err
	}
	return Principal{AdminID: admin.ID, Email: admin.Email, Name: admin.Name, ExpiresAt: exp}, nil
}

// RegisterInput describes a new operator account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates an operator account. It performs no authorization.
func (g *Gate) Register(ctx context.Context, in RegisterInput) (model.AdminAccount, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	var fe apperr.FieldErrors
	if email == "" {
		fe.Add("email", "is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fe.Add("email", "is not a valid email address")
	}
	switch {
	case len(in.Password) < minPasswordLen:
		fe.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	case len(in.Password) > maxPasswordLen:
		fe.Add("password", fmt.Sprintf("must be at most %d bytes", maxPasswordLen))
	}
	if name == "" {
		fe.Add("name", "is required")
	}
	if err := fe.Err(); err != nil {
		return model.AdminAccount{}, err
	}

	_, err := g.store.GetAdminByEmail(ctx, email)
	switch {
	case err == nil:
		fe.Add("email", "is already registered")
		return model.AdminAccount{}, fe.Err()
	case !apperr.Is(err, apperr.KindNotFound):
		return model.AdminAccount{}, err
	}

	hash, err := HashPassword(in.Password, g.cost)
	if err != nil {
		return model.AdminAccount{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return model.AdminAccount{}, fmt.Errorf("generate admin id: %w", err)
	}
	admin := model.AdminAccount{
		ID:           id.String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    g.now().UTC(),
	}
	if err := g.store.CreateAdmin(ctx, &admin); err != nil {
		return model.AdminAccount{}, err
	}
	g.log.Info("operator registered", zap.String("admin_id", admin.ID))
	return admin, nil
}

// HashPassword returns the bcrypt hash of pw. A cost of 0 uses bcrypt.DefaultCost.
func HashPassword(pw string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (g *Gate) dummy() []byte {
	g.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), g.cost)
		if err != nil {
			g.log.Error("failed to build dummy hash", zap.Error(err))
			return
		}
		g.dummyHash = h
	})
	return g.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mapJWTError names the reason a token failed to parse.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.New("token signature is invalid")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.New("token alg is invalid")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.New("token is malformed")
	default:
		return fmt.Errorf("token is invalid: %w", err)
	}
}
