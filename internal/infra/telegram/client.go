// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v3"
)

// botSender is the part of *telebot.Bot used for outgoing messages.
type botSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter pushes reminder text into Telegram chats.
type TelebotAdapter struct {
	bot botSender
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// PushText sends text to a chat. Group chats have negative numeric ids.
func (tba *TelebotAdapter) PushText(ctx context.Context, to string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	chatID, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", to, err)
	}

	_, err = tba.bot.Send(&telebot.Chat{ID: chatID}, text, &telebot.SendOptions{DisableWebPagePreview: true})
	return err
}
