// Package line adapts the LINE Messaging API to the bot's boundaries:
// webhook events in, replies and pushes out.
package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/rick850103/dobby-reminder-bot/internal/bot"
)

// ErrInvalidSignature reports a webhook request that did not carry a valid
// LINE signature. The transport should answer it with a client error.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Client wraps the LINE SDK client.
type Client struct {
	bot *linebot.Client
}

var _ bot.Messenger = (*Client)(nil)

func New(channelSecret, channelToken string) (*Client, error) {
	b, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("create line client: %w", err)
	}
	return &Client{bot: b}, nil
}

// Parse validates the webhook request signature and classifies each carried
// event exactly once into a bot.Incoming variant.
func (c *Client) Parse(req *http.Request) ([]bot.Incoming, error) {
	events, err := c.bot.ParseRequest(req)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("parse webhook request: %w", err)
	}
	incoming := make([]bot.Incoming, 0, len(events))
	for _, ev := range events {
		incoming = append(incoming, classify(ev))
	}
	return incoming, nil
}

func classify(ev *linebot.Event) bot.Incoming {
	if ev.Type != linebot.EventTypeMessage || ev.Source == nil {
		return bot.OtherEvent{}
	}
	msg, ok := ev.Message.(*linebot.TextMessage)
	if !ok {
		return bot.OtherEvent{}
	}
	return bot.TextMessage{
		UserID:     ev.Source.UserID,
		Text:       msg.Text,
		ReplyToken: ev.ReplyToken,
	}
}

func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	if _, err := c.bot.ReplyMessage(replyToken, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

func (c *Client) Push(ctx context.Context, userID, text string) error {
	if _, err := c.bot.PushMessage(userID, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("push message to %s: %w", userID, err)
	}
	return nil
}
