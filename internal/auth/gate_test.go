package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostel-booking-backend/internal/apperr"
	"hostel-booking-backend/internal/dbtest"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type gateFixture struct {
	db    *gorm.DB
	gate  *Gate
	clock *clock
	admin model.AdminAccount
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	db := dbtest.New(t)
	c := &clock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	g := NewGate(store.NewGormStore(db), Options{
		Secret:     []byte(testSecret),
		Issuer:     "hostel-booking",
		TTL:        time.Hour,
		Now:        c.now,
		BcryptCost: bcrypt.MinCost,
	}, zap.NewNop())

	admin, err := g.Register(context.Background(), RegisterInput{
		Email:    "Admin@Example.com",
		Password: "correct horse",
		Name:     "Admin",
	})
	require.NoError(t, err)
	return &gateFixture{db: db, gate: g, clock: c, admin: admin}
}

func (f *gateFixture) login(t *testing.T) Token {
	t.Helper()
	tok, err := f.gate.Login(context.Background(), "admin@example.com", "correct horse")
	require.NoError(t, err)
	return tok
}

func TestGate_LoginAndAuthorize(t *testing.T) {
	f := newGateFixture(t)
	assert.Equal(t, "admin@example.com", f.admin.Email)

	tok := f.login(t)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, f.clock.t.Add(time.Hour), tok.ExpiresAt)

	p, err := f.gate.Authorize(context.Background(), Credential(tok.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, p.AdminID)
	assert.Equal(t, "admin@example.com", p.Email)
	assert.Equal(t, "Admin", p.Name)
}

func TestGate_TokenClaims(t *testing.T) {
	f := newGateFixture(t)
	tok := f.login(t)

	var c claims
	_, err := jwt.ParseWithClaims(tok.AccessToken, &c, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	assert.Equal(t, f.admin.ID, c.Subject)
	assert.Equal(t, "admin@example.com", c.Email)
	assert.Equal(t, "hostel-booking", c.Issuer)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, f.clock.t, c.IssuedAt.Time.UTC())
}

func TestGate_LoginFailuresLookAlike(t *testing.T) {
	f := newGateFixture(t)

	_, wrongPassword := f.gate.Login(context.Background(), "admin@example.com", "wrong")
	_, unknownEmail := f.gate.Login(context.Background(), "nobody@example.com", "correct horse")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, apperr.Is(wrongPassword, apperr.KindUnauthorized))
	assert.True(t, apperr.Is(unknownEmail, apperr.KindUnauthorized))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestGate_AuthorizeRejects(t *testing.T) {
	f := newGateFixture(t)
	tok := f.login(t)

	sign := func(method jwt.SigningMethod, key any, mutate func(*claims)) string {
		c := claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   f.admin.ID,
				Issuer:    "hostel-booking",
				IssuedAt:  jwt.NewNumericDate(f.clock.t),
				ExpiresAt: jwt.NewNumericDate(f.clock.t.Add(time.Hour)),
				ID:        "jti",
			},
			Email: f.admin.Email,
		}
		if mutate != nil {
			mutate(&c)
		}
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}

	testCases := []struct {
		name string
		cred Credential
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"garbage", "abc"},
		{"wrong secret", Credential(sign(jwt.SigningMethodHS256, []byte("another-secret-another-secret-00"), nil))},
		{"other algorithm", Credential(sign(jwt.SigningMethodHS512, []byte(testSecret), nil))},
		{"unsigned", Credential(sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, nil))},
		{"other issuer", Credential(sign(jwt.SigningMethodHS256, []byte(testSecret), func(c *claims) { c.Issuer = "elsewhere" }))},
		{"no expiry", Credential(sign(jwt.SigningMethodHS256, []byte(testSecret), func(c *claims) { c.ExpiresAt = nil }))},
		{"no subject", Credential(sign(jwt.SigningMethodHS256, []byte(testSecret), func(c *claims) { c.Subject = "" }))},
		{"unknown subject", Credential(sign(jwt.SigningMethodHS256, []byte(testSecret), func(c *claims) { c.Subject = "ghost" }))},
		{"tampered", Credential(tok.AccessToken + "x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.gate.Authorize(context.Background(), tc.cred)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "got %v", err)
		})
	}
}

func TestGate_AuthorizeExpired(t *testing.T) {
	f := newGateFixture(t)
	tok := f.login(t)

	f.clock.t = f.clock.t.Add(59 * time.Minute)
	_, err := f.gate.Authorize(context.Background(), Credential(tok.AccessToken))
	require.NoError(t, err)

	f.clock.t = f.clock.t.Add(time.Minute)
	_, err = f.gate.Authorize(context.Background(), Credential(tok.AccessToken))
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestGate_AuthorizeDeletedAccount(t *testing.T) {
	f := newGateFixture(t)
	tok := f.login(t)

	require.NoError(t, f.db.Delete(&model.AdminAccount{}, "id = ?", f.admin.ID).Error)

	_, err := f.gate.Authorize(context.Background(), Credential(tok.AccessToken))
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestGate_Register(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.Register(context.Background(), RegisterInput{
		Email: "ADMIN@example.com", Password: "another password", Name: "Dup",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "already registered")

	_, err = f.gate.Register(context.Background(), RegisterInput{Email: "bad", Password: "short", Name: " "})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	for _, field := range []string{"email", "password", "name"} {
		assert.Contains(t, err.Error(), field)
	}

	second, err := f.gate.Register(context.Background(), RegisterInput{
		Email: "ops@example.com", Password: "long enough", Name: "Ops",
	})
	require.NoError(t, err)
	assert.NotEqual(t, f.admin.ID, second.ID)

	_, err = f.gate.Login(context.Background(), " OPS@example.com ", "long enough")
	assert.NoError(t, err)
}

func TestFromAuthorizationHeader(t *testing.T) {
	testCases := []struct {
		header string
		want   Credential
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer   abc", "abc"},
		{"Basic dXNlcjpwYXNz", ""},
		{"abc.def.ghi", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FromAuthorizationHeader(tc.header), "header %q", tc.header)
	}
}
