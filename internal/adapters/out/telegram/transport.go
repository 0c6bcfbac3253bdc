package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the part of *tgbotapi.BotAPI the adapters use.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var buttonLabels = map[order.Action]string{
	order.ActionClaim:    "✋ Claim",
	order.ActionComplete: "✅ Complete",
}

// Transport implements ports.PushTransport on top of the Bot API.
// A handle is "<chat id>:<message id>".
type Transport struct {
	bot Bot
}

func NewTransport(bot Bot) *Transport {
	return &Transport{bot: bot}
}

// Send posts the message with one inline button per action.
func (t *Transport) Send(
	ctx context.Context,
	recipient kernel.UserID,
	msg notification.Message,
) (notification.Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	chatID, err := ChatID(recipient)
	if err != nil {
		return "", err
	}

	out := tgbotapi.NewMessage(chatID, msg.Text)
	if len(msg.Actions) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(msg.Actions))
		for _, action := range msg.Actions {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label(action), CallbackData(action, msg.OrderID)))
		}
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}

	sent, err := t.bot.Send(out)
	if err != nil {
		return "", fmt.Errorf("send to %s: %w", recipient, err)
	}

	return handleOf(chatID, sent.MessageID), nil
}

// Retract deletes the message. A message that can no longer be deleted, because it
// is gone or too old, counts as retracted.
func (t *Transport) Retract(ctx context.Context, handle notification.Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	chatID, messageID, err := parseHandle(handle)
	if err != nil {
		return err
	}

	_, err = t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err == nil || isGone(err) {
		return nil
	}
	return fmt.Errorf("delete message %s: %w", handle, err)
}

// ChatID converts an identity into a Telegram chat id.
func ChatID(id kernel.UserID) (int64, error) {
	chatID, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("chat id", err)
	}
	return chatID, nil
}

func label(action order.Action) string {
	if l, ok := buttonLabels[action]; ok {
		return l
	}
	return string(action)
}

func handleOf(chatID int64, messageID int) notification.Handle {
	return notification.Handle(strconv.FormatInt(chatID, 10) + ":" + strconv.Itoa(messageID))
}

func parseHandle(h notification.Handle) (int64, int, error) {
	rawChat, rawMessage, ok := strings.Cut(string(h), ":")
	if !ok {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("handle", fmt.Errorf("%q is not chat:message", h))
	}
	chatID, err := strconv.ParseInt(rawChat, 10, 64)
	if err != nil {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("handle", err)
	}
	messageID, err := strconv.Atoi(rawMessage)
	if err != nil {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("handle", err)
	}
	return chatID, messageID, nil
}

// goneDescriptions are the Bot API error texts for a delete of a message that no longer exists.
var goneDescriptions = []string{
	"message to delete not found",
	"message can't be deleted",
}

func isGone(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusBadRequest {
		return false
	}
	description := strings.ToLower(apiErr.Message)
	for _, gone := range goneDescriptions {
		if strings.Contains(description, gone) {
			return true
		}
	}
	return false
}
