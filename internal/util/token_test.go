package util

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/pkg/config"
)

func signRS256(t *testing.T, key *rsa.PrivateKey, kid, subject string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &JWTClaims{
		SessionID: "sess_1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "https://clerk.example.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestDevSecretRoundTrip(t *testing.T) {
	tm, err := NewTokenManager(config.IdentityConfig{DevSecret: "secret"})
	require.NoError(t, err)

	token, err := tm.CreateDevToken("user_1", time.Hour)
	require.NoError(t, err)
	msg, err := tm.CheckToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", msg.UserID)

	expired, err := tm.CreateDevToken("user_1", -time.Hour)
	require.NoError(t, err)
	_, err = tm.CheckToken(context.Background(), expired)
	assert.Error(t, err)

	other, err := NewTokenManager(config.IdentityConfig{DevSecret: "different"})
	require.NoError(t, err)
	_, err = other.CheckToken(context.Background(), token)
	assert.Error(t, err)
}

func TestNoKeySource(t *testing.T) {
	_, err := NewTokenManager(config.IdentityConfig{})
	assert.ErrorIs(t, err, ErrNoKeySource)
}

func TestPEMPublicKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	tm, err := NewTokenManager(config.IdentityConfig{
		PublicKey: string(pemKey),
		Issuer:    "https://clerk.example.com",
	})
	require.NoError(t, err)

	msg, err := tm.CheckToken(context.Background(), signRS256(t, key, "", "user_2", time.Now().Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, "user_2", msg.UserID)
	assert.Equal(t, "sess_1", msg.SessionID)

	_, err = tm.CreateDevToken("user_2", time.Hour)
	assert.Error(t, err, "no dev tokens without a dev secret")

	hs, err := NewTokenManager(config.IdentityConfig{DevSecret: "secret"})
	require.NoError(t, err)
	hsToken, err := hs.CreateDevToken("user_2", time.Hour)
	require.NoError(t, err)
	_, err = tm.CheckToken(context.Background(), hsToken)
	assert.Error(t, err, "HS256 is rejected when an RSA key is configured")
}

func TestJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "ins_1",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		})
	}))
	defer srv.Close()

	tm, err := NewTokenManager(config.IdentityConfig{JWKSURL: srv.URL})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		msg, err := tm.CheckToken(context.Background(), signRS256(t, key, "ins_1", "user_3", time.Now().Add(time.Minute)))
		require.NoError(t, err)
		assert.Equal(t, "user_3", msg.UserID)
	}
	assert.Equal(t, int32(1), hits.Load(), "keys are cached")

	_, err = tm.CheckToken(context.Background(), signRS256(t, key, "ins_unknown", "user_3", time.Now().Add(time.Minute)))
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load(), "unknown kids do not hammer the endpoint")
}
