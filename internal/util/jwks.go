package util

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/imroc/req/v3"
)

// jwksMinRefresh limits how often an unknown kid can trigger a refetch.
const jwksMinRefresh = time.Minute

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

var _ keySource = (*jwksCache)(nil)

type jwksCache struct {
	client *req.Client
	url    string

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func newJWKSCache(url string) *jwksCache {
	return &jwksCache{
		client: req.C().SetTimeout(10 * time.Second),
		url:    url,
		keys:   map[string]*rsa.PublicKey{},
	}
}

func (c *jwksCache) key(ctx context.Context, token *jwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)

	c.mu.Lock()
	defer c.mu.Unlock()
	if k, ok := c.lookup(kid); ok {
		return k, nil
	}
	if time.Since(c.fetchedAt) < jwksMinRefresh && len(c.keys) > 0 {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	if k, ok := c.lookup(kid); ok {
		return k, nil
	}
	return nil, fmt.Errorf("unknown key id %q", kid)
}

// lookup accepts a missing kid only when the set holds a single key.
func (c *jwksCache) lookup(kid string) (*rsa.PublicKey, bool) {
	if kid == "" && len(c.keys) == 1 {
		for _, k := range c.keys {
			return k, true
		}
	}
	k, ok := c.keys[kid]
	return k, ok
}

func (c *jwksCache) refresh(ctx context.Context) error {
	var set struct {
		Keys []jwk `json:"keys"`
	}
	resp, err := c.client.R().SetContext(ctx).SetSuccessResult(&set).Get(c.url)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	if !resp.IsSuccessState() {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}
	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			return fmt.Errorf("jwks key %q: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("jwks has no RSA keys")
	}
	c.keys = keys
	c.fetchedAt = time.Now()
	return nil
}

func (k jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	if len(e) == 0 || len(e) > 4 {
		return nil, errors.New("bad exponent")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(new(big.Int).SetBytes(e).Int64()),
	}, nil
}
