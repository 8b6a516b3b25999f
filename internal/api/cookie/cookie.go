// Package cookie carries the opaque session token in a signed HttpOnly cookie.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// ErrNoSession is returned by Token when the request has no usable session cookie.
var ErrNoSession = fmt.Errorf("session cookie: %w", domain.ErrUnauthenticated)

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Jar signs session tokens into HS256 JWT cookies. The JWT only protects the
// token from tampering; the server-side session stays authoritative.
type Jar struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewJar(name, secret string, ttl time.Duration, secure bool) *Jar {
	return &Jar{name: name, secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

// Issue writes the session cookie for token.
func (j *Jar) Issue(c echo.Context, token string) error {
	now := j.now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: token,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}).SignedString(j.secret)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}

	c.SetCookie(j.cookie(signed, int(j.ttl.Seconds())))
	return nil
}

// Token returns the session token carried by the request cookie. Missing,
// tampered and expired cookies all yield ErrNoSession.
func (j *Jar) Token(c echo.Context) (string, error) {
	ck, err := c.Cookie(j.name)
	if err != nil || ck.Value == "" {
		return "", ErrNoSession
	}

	var cl claims
	tkn, err := jwt.ParseWithClaims(ck.Value, &cl, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !tkn.Valid || cl.SessionID == "" {
		return "", errors.Join(ErrNoSession, err)
	}
	return cl.SessionID, nil
}

// Clear expires the session cookie on the client.
func (j *Jar) Clear(c echo.Context) {
	c.SetCookie(j.cookie("", -1))
}

func (j *Jar) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     j.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
