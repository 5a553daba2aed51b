package line

import (
	"errors"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

var ErrInvalidSignature = errors.New("invalid LINE webhook signature")

// GroupEventKind tells whether the bot joined or left a chat.
type GroupEventKind string

const (
	GroupJoined GroupEventKind = "join"
	GroupLeft   GroupEventKind = "leave"
)

// GroupEvent is a join or leave of the bot in a group or room.
type GroupEvent struct {
	Kind    GroupEventKind
	GroupID string
	IsRoom  bool
}

// WebhookParser verifies the signature of LINE webhook calls and extracts group membership events.
type WebhookParser struct {
	channelSecret string
}

func NewWebhookParser(channelSecret string) *WebhookParser {
	return &WebhookParser{channelSecret: channelSecret}
}

// ParseGroupEvents returns the join and leave events of the request.
// Events of other kinds and events from one-to-one chats are ignored.
func (p *WebhookParser) ParseGroupEvents(r *http.Request) ([]GroupEvent, error) {
	cb, err := webhook.ParseRequest(p.channelSecret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, err
	}

	var events []GroupEvent
	for _, event := range cb.Events {
		switch e := event.(type) {
		case webhook.JoinEvent:
			if ge, ok := groupEventFrom(GroupJoined, e.Source); ok {
				events = append(events, ge)
			}
		case webhook.LeaveEvent:
			if ge, ok := groupEventFrom(GroupLeft, e.Source); ok {
				events = append(events, ge)
			}
		}
	}
	return events, nil
}

func groupEventFrom(kind GroupEventKind, source webhook.SourceInterface) (GroupEvent, bool) {
	switch s := source.(type) {
	case webhook.GroupSource:
		return GroupEvent{Kind: kind, GroupID: s.GroupId}, true
	case webhook.RoomSource:
		return GroupEvent{Kind: kind, GroupID: s.RoomId, IsRoom: true}, true
	default:
		return GroupEvent{}, false
	}
}
