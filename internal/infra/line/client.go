// Package line talks to the LINE Messaging API.
package line

import (
	"context"
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// pushAPI is the part of the Messaging API client the sender needs.
type pushAPI interface {
	PushMessage(pushMessageRequest *messaging_api.PushMessageRequest, xLineRetryKey string) (*messaging_api.PushMessageResponse, error)
}

// Client pushes plain text messages to LINE groups and users.
type Client struct {
	api pushAPI
}

func NewClient(channelAccessToken string) (*Client, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging client: %w", err)
	}
	return &Client{api: api}, nil
}

// PushText sends text to a group, room or user id. The SDK call does not take a context,
// so ctx is only checked before sending.
func (c *Client) PushText(ctx context.Context, to string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To: to,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	}, "")
	if err != nil {
		return fmt.Errorf("LINE push to %s failed: %w", to, err)
	}
	return nil
}
