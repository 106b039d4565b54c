package telegram

import (
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telegram/telegramtest"
)

const testBotToken = telegramtest.BotToken

type tgUser = telegramtest.User

func signInitData(t *testing.T, token string, u tgUser, authDate time.Time) string {
	t.Helper()
	return telegramtest.Sign(token, u, authDate)
}
