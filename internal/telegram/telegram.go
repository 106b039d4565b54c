// Package telegram authenticates requests coming from the Telegram WebApp
// using the signed init data the client sends with every call.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const InitDataHeader = "X-Telegram-Init-Data"

var (
	ErrMissingInitData = errors.New("telegram init data is missing")
	ErrInvalidInitData = errors.New("telegram init data is invalid")
	ErrNotConfigured   = errors.New("telegram bot token is not configured")
)

// User is the Telegram account behind a request.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
}

type Verifier struct {
	botToken string
	ttl      time.Duration
}

func NewVerifier(botToken string, ttl time.Duration) *Verifier {
	return &Verifier{botToken: botToken, ttl: ttl}
}

// Verify checks the init data signature and age and returns its user.
func (v *Verifier) Verify(raw string) (User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return User{}, ErrMissingInitData
	}
	if v.botToken == "" {
		return User{}, ErrNotConfigured
	}
	if err := initdata.Validate(raw, v.botToken, v.ttl); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	data, err := initdata.Parse(raw)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	return User{
		ID:        data.User.ID,
		FirstName: data.User.FirstName,
		LastName:  data.User.LastName,
		Username:  data.User.Username,
	}, nil
}

// InitDataFromRequest reads init data from the X-Telegram-Init-Data header
// or an "Authorization: tma <data>" header.
func InitDataFromRequest(r *http.Request) string {
	if v := r.Header.Get(InitDataHeader); v != "" {
		return v
	}
	auth := r.Header.Get("Authorization")
	if scheme, rest, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "tma") {
		return rest
	}
	return ""
}

type ctxKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}
