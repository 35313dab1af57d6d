package util

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

type (
	// JWTClaims are the claims of an identity-provider session token. The
	// subject is the user id.
	JWTClaims struct {
		SessionID string `json:"sid,omitempty"`
		jwt.RegisteredClaims
	}
	JWTMessage struct {
		UserID    string `json:"userID"`
		SessionID string `json:"sessionID"`
	}
)

var ErrNoKeySource = errors.New("identity: no publicKey, jwksURL or devSecret configured")

type keySource interface {
	key(ctx context.Context, token *jwt.Token) (any, error)
}

type staticKey struct{ k any }

func (s staticKey) key(context.Context, *jwt.Token) (any, error) { return s.k, nil }

// TokenManager verifies caller session tokens.
type TokenManager struct {
	keys      keySource
	options   []jwt.ParserOption
	devSecret []byte
}

var (
	once     sync.Once
	tokenMgr *TokenManager
)

func GetTokenMgr() *TokenManager {
	once.Do(func() {
		var err error
		tokenMgr, err = NewTokenManager(config.GetConfig().Identity)
		if err != nil {
			panic(err)
		}
	})
	return tokenMgr
}

// NewTokenManager picks the first configured key source: a PEM public key, a
// JWKS endpoint, then an HS256 development secret.
func NewTokenManager(cfg config.IdentityConfig) (*TokenManager, error) {
	tm := &TokenManager{}
	method := jwt.SigningMethodRS256.Alg()
	switch {
	case cfg.PublicKey != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("identity public key: %w", err)
		}
		tm.keys = staticKey{k: pub}
	case cfg.JWKSURL != "":
		tm.keys = newJWKSCache(cfg.JWKSURL)
	case cfg.DevSecret != "":
		logutils.Log.Warn("identity: verifying tokens with the HS256 development secret")
		tm.devSecret = []byte(cfg.DevSecret)
		tm.keys = staticKey{k: tm.devSecret}
		method = jwt.SigningMethodHS256.Alg()
	default:
		return nil, ErrNoKeySource
	}

	tm.options = []jwt.ParserOption{
		jwt.WithValidMethods([]string{method}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if cfg.Issuer != "" {
		tm.options = append(tm.options, jwt.WithIssuer(cfg.Issuer))
	}
	return tm, nil
}

// CheckToken validates requestToken and returns the identity it carries.
func (tm *TokenManager) CheckToken(ctx context.Context, requestToken string) (JWTMessage, error) {
	claims := JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(token *jwt.Token) (any, error) {
		return tm.keys.key(ctx, token)
	}, tm.options...)
	if err != nil {
		return JWTMessage{}, err
	}
	if claims.Subject == "" {
		return JWTMessage{}, errors.New("token has no subject")
	}
	return JWTMessage{UserID: claims.Subject, SessionID: claims.SessionID}, nil
}

// CreateDevToken signs an HS256 token for userID. It only works when the
// manager was built from a development secret.
func (tm *TokenManager) CreateDevToken(userID string, ttl time.Duration) (string, error) {
	if tm.devSecret == nil {
		return "", errors.New("identity: dev tokens need identity.devSecret")
	}
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.devSecret)
}
