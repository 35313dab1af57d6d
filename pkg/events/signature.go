package events

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/raids-lab/projecthub/pkg/apperror"
)

const (
	SignatureHeader = "X-Inngest-Signature"
	// MaxSignatureAge bounds replay of a captured request.
	MaxSignatureAge = 5 * time.Minute
)

var signingKeyPrefix = regexp.MustCompile(`^signkey-\w+-`)

func hmacKey(signingKey string) []byte {
	return []byte(signingKeyPrefix.ReplaceAllString(signingKey, ""))
}

func mac(signingKey string, body []byte, ts string) string {
	h := hmac.New(sha256.New, hmacKey(signingKey))
	h.Write(body)
	h.Write([]byte(ts))
	return hex.EncodeToString(h.Sum(nil))
}

// Sign returns the signature header value for body at time at.
func Sign(signingKey string, body []byte, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return "t=" + ts + "&s=" + mac(signingKey, body, ts)
}

// Verify checks a "t=<unix>&s=<hex>" signature header against body. Nothing
// verifies without a signing key.
func Verify(signingKey, header string, body []byte, now time.Time) error {
	if signingKey == "" {
		return apperror.Unauthorized("webhook signing key is not configured")
	}
	if header == "" {
		return apperror.Unauthorized("missing signature")
	}
	v, err := url.ParseQuery(header)
	if err != nil {
		return apperror.Unauthorized("malformed signature")
	}
	ts, sig := v.Get("t"), v.Get("s")
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || sig == "" {
		return apperror.Unauthorized("malformed signature")
	}
	if now.Sub(time.Unix(unix, 0)) > MaxSignatureAge {
		return apperror.Unauthorized("signature expired")
	}
	want := mac(signingKey, body, ts)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return apperror.Unauthorized("invalid signature")
	}
	return nil
}
