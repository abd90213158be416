package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestTokenVerifyReturnsSubject(t *testing.T) {
	clock := newClock()
	issuer := NewTokenIssuer(testKey, clock.Now)

	for _, subject := range []string{"1", "42", "alice"} {
		for _, ttl := range []time.Duration{time.Second, 30 * time.Minute, 48 * time.Hour} {
			token, err := issuer.Issue(subject, ttl)
			require.NoError(t, err)

			got, err := issuer.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, subject, got)
		}
	}
}

func TestTokenExpires(t *testing.T) {
	clock := newClock()
	issuer := NewTokenIssuer(testKey, clock.Now)

	token, err := issuer.Issue("7", time.Minute)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = issuer.Verify(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	issuer := NewTokenIssuer(testKey, newClock().Now)

	token, err := issuer.Issue("7", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Swap in a payload naming another subject but keep the old signature.
	other, err := issuer.Issue("8", time.Hour)
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	_, err = issuer.Verify(forged)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	sig := []byte(parts[2])
	if sig[5] == 'A' {
		sig[5] = 'B'
	} else {
		sig[5] = 'A'
	}
	_, err = issuer.Verify(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestTokenWrongKeyAndGarbage(t *testing.T) {
	clock := newClock()
	token, err := NewTokenIssuer(testKey, clock.Now).Issue("7", time.Hour)
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("another-key-another-key"), clock.Now).Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	for _, bad := range []string{"", "abc", "a.b.c"} {
		_, err = NewTokenIssuer(testKey, clock.Now).Verify(bad)
		assert.ErrorIs(t, err, apperr.ErrInvalidToken, bad)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	clock := newClock()
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer(testKey, clock.Now).Verify(unsigned)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestTokenRequiresExpiry(t *testing.T) {
	clock := newClock()
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "7"}).SignedString(testKey)
	require.NoError(t, err)

	_, err = NewTokenIssuer(testKey, clock.Now).Verify(noExp)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestTokenIssueRejectsNonPositiveTTL(t *testing.T) {
	issuer := NewTokenIssuer(testKey, nil)
	_, err := issuer.Issue("7", 0)
	assert.Error(t, err)
	_, err = issuer.Issue("7", -time.Minute)
	assert.Error(t, err)
}

func TestTokenCarriesUniqueID(t *testing.T) {
	issuer := NewTokenIssuer(testKey, newClock().Now)

	a, err := issuer.Issue("7", time.Hour)
	require.NoError(t, err)
	b, err := issuer.Issue("7", time.Hour)
	require.NoError(t, err)

	ca, err := issuer.Parse(a)
	require.NoError(t, err)
	cb, err := issuer.Parse(b)
	require.NoError(t, err)
	assert.NotEmpty(t, ca.ID)
	assert.NotEqual(t, ca.ID, cb.ID)
}
