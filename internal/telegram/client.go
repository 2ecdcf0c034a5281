package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"

	"weatherstatus/internal/config"
)

// Client wraps the MTProto client with the one account operation this
// program needs: setting the emoji status.
type Client struct {
	client *telegram.Client
}

func New(cfg config.Config) *Client {
	return &Client{
		client: telegram.NewClient(cfg.TelegramAPIID, cfg.TelegramAPIHash, telegram.Options{
			SessionStorage: &session.FileStorage{Path: cfg.SessionFile},
		}),
	}
}

// Run connects, verifies the stored session is authorized and then invokes f
// within the connected client's lifetime. An unauthorized session is a fatal
// startup condition: there is no interactive login flow here.
func (c *Client) Run(ctx context.Context, f func(ctx context.Context) error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		authStatus, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status: %w", err)
		}
		if !authStatus.Authorized {
			return errors.New("telegram session is not authorized: create the session file with an authorized login first")
		}
		if user := authStatus.User; user != nil {
			slog.Info("telegram connected", "user", user.FirstName, "id", user.ID)
		}

		return f(ctx)
	})
}

// SetEmojiStatus sets the account's emoji status to the given custom-emoji
// document. The call always goes out even when the status is unchanged.
func (c *Client) SetEmojiStatus(ctx context.Context, documentID int64) error {
	_, err := c.client.API().AccountUpdateEmojiStatus(ctx, &tg.EmojiStatus{DocumentID: documentID})
	if err != nil {
		return fmt.Errorf("update emoji status: %w", err)
	}
	return nil
}

// ClearEmojiStatus removes the account's emoji status.
func (c *Client) ClearEmojiStatus(ctx context.Context) error {
	_, err := c.client.API().AccountUpdateEmojiStatus(ctx, &tg.EmojiStatusEmpty{})
	if err != nil {
		return fmt.Errorf("clear emoji status: %w", err)
	}
	return nil
}
