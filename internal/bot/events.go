// Package bot contains the reminder assistant's two entry points: message
// intake and the periodic due sweep.
package bot

import "context"

// Incoming is one inbound webhook event, classified once at the transport
// boundary. The interface is sealed so handling stays exhaustive.
type Incoming interface {
	incoming()
}

// TextMessage is a text message from a user. ReplyToken is valid for exactly
// one reply to this event.
type TextMessage struct {
	UserID     string
	Text       string
	ReplyToken string
}

// OtherEvent is any event the bot does not act on (stickers, follows, joins
// and so on). It is ignored without error.
type OtherEvent struct{}

func (TextMessage) incoming() {}
func (OtherEvent) incoming()  {}

// Messenger sends text back to users: Reply consumes an event's one-shot
// reply token, Push addresses a user directly outside any event.
type Messenger interface {
	Reply(ctx context.Context, replyToken, text string) error
	Push(ctx context.Context, userID, text string) error
}
