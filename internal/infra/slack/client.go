// Package slack delivers notifications to Slack channels.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// API is the part of the Slack client used for posting.
type API interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type Client struct {
	api API
}

func NewClient(botToken string) *Client {
	return &Client{api: slack.New(botToken)}
}

func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// PushText posts text to a channel id or user id.
func (c *Client) PushText(ctx context.Context, to string, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, to, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack post to %s failed: %w", to, err)
	}
	return nil
}
