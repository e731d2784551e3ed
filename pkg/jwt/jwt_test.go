package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"clinic-admin/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := svc.GenerateSessionToken("user_1", []string{"admin@clinic.test", "alt@clinic.test"}, time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, []string{"admin@clinic.test", "alt@clinic.test"}, claims.EmailAddresses)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "issuer-secret"})
	verifier := NewJWTService(config.JWTConfig{Secret: "other-secret"})

	token, err := issuer.GenerateSessionToken("user_1", []string{"a@x.com"}, time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := svc.GenerateSessionToken("user_1", []string{"a@x.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_MissingSubject(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	token, err := svc.GenerateSessionToken("", []string{"a@x.com"}, time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

// A token signed with an empty HMAC key must never verify, even by a
// service that was itself built without a secret.
func TestJWTService_EmptySecretRejectsEverything(t *testing.T) {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := enc.EncodeToString([]byte(`{"sub":"attacker","email_addresses":["admin@clinic.test"]}`))
	mac := hmac.New(sha256.New, []byte(""))
	mac.Write([]byte(header + "." + payload))
	forged := header + "." + payload + "." + enc.EncodeToString(mac.Sum(nil))

	svc := NewJWTService(config.JWTConfig{Secret: ""})
	claims, err := svc.ValidateToken(forged)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
