// Package telegramtest signs WebApp init data for tests that go through the
// Telegram auth middleware.
package telegramtest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BotToken is a well-formed token for verifiers built in tests.
const BotToken = "123456:TEST-token"

// User is the user object as the Telegram client encodes it.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Sign builds init data for u the way the Telegram client does, signed with
// token and stamped with authDate.
func Sign(token string, u User, authDate time.Time) string {
	userJSON, err := json.Marshal(u)
	if err != nil {
		panic(err)
	}

	vals := url.Values{}
	vals.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	vals.Set("user", string(userJSON))
	vals.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))

	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+vals.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(token))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	vals.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return vals.Encode()
}
