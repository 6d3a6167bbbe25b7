// Package telegram adapts the bot API to the engine: long-polled updates in,
// text and documents out. All conversation logic stays in the engine; this
// package only translates between wire types and engine events.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/diogoviieira/register-track-bot/internal/engine"
	"github.com/diogoviieira/register-track-bot/internal/log"
)

// Handler consumes inbound events. Implemented by the engine.
type Handler interface {
	HandleCommand(ctx context.Context, cmd engine.Command)
	HandleText(ctx context.Context, txt engine.Text)
}

type Transport struct {
	bot     *tgbotapi.BotAPI
	handler Handler
	logger  *log.Logger
}

func New(token string, logger *log.Logger) (*Transport, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	return &Transport{
		bot:    bot,
		logger: logger.WithComponent(log.ComponentTelegram),
	}, nil
}

// SetHandler wires the event consumer. Must be called before Run.
func (t *Transport) SetHandler(h Handler) {
	t.handler = h
}

// Run long-polls until the context is cancelled. Events for one chat arrive
// in order; different chats interleave freely.
func (t *Transport) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := t.bot.GetUpdatesChan(u)
	t.logger.InfoContext(ctx, "Listening for updates",
		"bot_username", t.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("updates channel closed")
			}
			t.dispatch(ctx, update)
		}
	}
}

func (t *Transport) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	userID := msg.From.ID

	if msg.IsCommand() {
		t.logger.DebugContext(ctx, "Command received",
			log.FieldUserID, userID,
			log.FieldCommand, msg.Command())
		t.handler.HandleCommand(ctx, engine.Command{
			Name:   msg.Command(),
			Args:   strings.Fields(msg.CommandArguments()),
			UserID: userID,
			Raw:    msg.Text,
		})
		return
	}

	t.handler.HandleText(ctx, engine.Text{
		Content: msg.Text,
		UserID:  userID,
	})
}

// SendText implements the engine sink. Choices become a one-time reply
// keyboard; without choices any stale keyboard is removed.
func (t *Transport) SendText(ctx context.Context, userID int64, body string, choices [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(userID, body)
	if len(choices) > 0 {
		rows := make([][]tgbotapi.KeyboardButton, 0, len(choices))
		for _, choice := range choices {
			row := make([]tgbotapi.KeyboardButton, 0, len(choice))
			for _, label := range choice {
				row = append(row, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, row)
		}
		keyboard := tgbotapi.NewOneTimeReplyKeyboard(rows...)
		keyboard.ResizeKeyboard = true
		msg.ReplyMarkup = keyboard
	} else {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (t *Transport) SendDocument(ctx context.Context, userID int64, doc engine.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	upload := tgbotapi.NewDocument(userID, tgbotapi.FileBytes{
		Name:  doc.Name,
		Bytes: doc.Data,
	})
	upload.Caption = doc.Caption

	if _, err := t.bot.Send(upload); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}
