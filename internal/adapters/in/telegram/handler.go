// Package telegram turns bot updates into commands: inline button presses claim or
// complete orders, and the /start role menu registers users.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgout "workorders/internal/adapters/out/telegram"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

// Role menu buttons. "Manager" is the label older clients still send.
const (
	buttonCreator = "🛒 Creator"
	buttonManager = "🛒 Manager"
	buttonWorker  = "🛠 Worker"
)

type (
	ClaimOrder interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) error
	}

	CompleteOrder interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) error
	}

	RegisterUser interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) error
	}
)

// Handler dispatches updates received from the Bot API.
type Handler struct {
	bot      tgout.Bot
	claim    ClaimOrder
	complete CompleteOrder
	register RegisterUser
	appURL   string
	logger   *slog.Logger
}

// NewHandler creates the update handler. appURL, when set, is offered to creators
// as a link to the web app after they register.
func NewHandler(
	bot tgout.Bot,
	claim ClaimOrder,
	complete CompleteOrder,
	register RegisterUser,
	appURL string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		claim:    claim,
		complete: complete,
		register: register,
		appURL:   appURL,
		logger:   logger.With("component", "telegram-bot"),
	}
}

// maxInFlightUpdates bounds how many updates are handled at once.
const maxInFlightUpdates = 16

// Run handles updates concurrently until ctx is canceled or the channel is closed,
// then waits for the updates already in flight.
func (h *Handler) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	var g errgroup.Group
	g.SetLimit(maxInFlightUpdates)
	defer func() { _ = g.Wait() }()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			g.Go(func() error {
				h.HandleUpdate(ctx, update)
				return nil
			})
		}
	}
}

// HandleUpdate processes a single update. Failures are reported to the user and logged.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.From == nil {
		return
	}
	actor := kernel.UserID(strconv.FormatInt(q.From.ID, 10))

	action, id, err := tgout.ParseCallbackData(q.Data)
	if err != nil {
		h.answer(q.ID, "Unknown button")
		return
	}

	switch action {
	case order.ActionClaim:
		err = h.claimOrder(ctx, id, actor)
	case order.ActionComplete:
		err = h.completeOrder(ctx, id, actor)
	}

	h.answer(q.ID, h.callbackReply(action, id, err))
}

func (h *Handler) claimOrder(ctx context.Context, id kernel.OrderID, worker kernel.UserID) error {
	cmd, err := commands.NewClaimOrderCommand(id, worker)
	if err != nil {
		return err
	}
	return h.claim.Handle(ctx, cmd)
}

func (h *Handler) completeOrder(ctx context.Context, id kernel.OrderID, worker kernel.UserID) error {
	cmd, err := commands.NewCompleteOrderCommand(id, worker)
	if err != nil {
		return err
	}
	return h.complete.Handle(ctx, cmd)
}

func (h *Handler) callbackReply(action order.Action, id kernel.OrderID, err error) string {
	switch {
	case err == nil && action == order.ActionClaim:
		return fmt.Sprintf("Order #%d is yours", id)
	case err == nil:
		return fmt.Sprintf("Order #%d completed 🎉", id)
	case errors.Is(err, errs.ErrConflict) && action == order.ActionClaim:
		return fmt.Sprintf("❌ Order #%d is already taken or gone", id)
	case errors.Is(err, errs.ErrConflict):
		return fmt.Sprintf("❌ Order #%d cannot be completed", id)
	case errors.Is(err, errs.ErrNotAuthorized):
		return "❌ Only workers can do this"
	default:
		h.logger.Error("button press failed", "action", action, "order_id", id, "error", err)
		return "❌ Something went wrong, try again"
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.sendRoleMenu(msg.Chat.ID)
		case "open":
			h.sendAppLink(msg.Chat.ID)
		}
		return
	}

	switch strings.TrimSpace(msg.Text) {
	case buttonCreator, buttonManager:
		h.registerAs(ctx, msg, user.RoleCreator)
	case buttonWorker:
		h.registerAs(ctx, msg, user.RoleWorker)
	}
}

func (h *Handler) sendRoleMenu(chatID int64) {
	out := tgbotapi.NewMessage(chatID, "Choose your role:")
	keyboard := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonCreator),
		tgbotapi.NewKeyboardButton(buttonWorker),
	))
	keyboard.OneTimeKeyboard = true
	out.ReplyMarkup = keyboard
	h.send(out)
}

func (h *Handler) registerAs(ctx context.Context, msg *tgbotapi.Message, role user.Role) {
	if msg.From == nil {
		return
	}

	cmd, err := commands.NewRegisterUserCommand(
		kernel.UserID(strconv.FormatInt(msg.From.ID, 10)), role, msg.From.FirstName)
	if err == nil {
		err = h.register.Handle(ctx, cmd)
	}
	if err != nil {
		h.logger.Error("registration failed", "telegram_id", msg.From.ID, "role", role, "error", err)
		h.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Registration failed, try again"))
		return
	}

	text := "✅ You are a worker. New orders will arrive here."
	if role == user.RoleCreator {
		text = "✅ You are a creator."
	}
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	h.send(out)

	if role == user.RoleCreator {
		h.sendAppLink(msg.Chat.ID)
	}
}

func (h *Handler) sendAppLink(chatID int64) {
	if h.appURL == "" {
		return
	}
	out := tgbotapi.NewMessage(chatID, "Open the app:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("📱 Open", h.appURL),
	))
	h.send(out)
}

func (h *Handler) send(out tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(out); err != nil {
		h.logger.Warn("reply failed", "chat_id", out.ChatID, "error", err)
	}
}

func (h *Handler) answer(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Warn("callback answer failed", "error", err)
	}
}
