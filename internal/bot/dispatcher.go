// Package bot drives the Telegram side of the storefront: the admin command
// interpreter and the cart checkout flow.
package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender is the slice of the Telegram client the handlers need for plain
// text replies. *tgbot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

// Dispatcher routes inbound Telegram updates: payment events and web-app
// cart submissions go to the checkout flow, slash commands to the admin
// interpreter. Everything else is ignored.
type Dispatcher struct {
	sender    Sender
	admin     *Admin
	checkout  *Checkout
	webAppURL string
	logger    *slog.Logger
}

func NewDispatcher(sender Sender, admin *Admin, checkout *Checkout, webAppURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		admin:     admin,
		checkout:  checkout,
		webAppURL: webAppURL,
		logger:    logger,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, update *models.Update) {
	switch {
	case update.PreCheckoutQuery != nil:
		d.checkout.HandlePreCheckout(ctx, update.PreCheckoutQuery.ID)
	case update.Message == nil:
	case update.Message.SuccessfulPayment != nil:
		d.checkout.HandlePayment(ctx, update.Message)
	case update.Message.WebAppData != nil:
		d.checkout.HandleCart(ctx, update.Message.Chat.ID, update.Message.WebAppData.Data)
	default:
		d.dispatchCommand(ctx, update.Message)
	}
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, msg *models.Message) {
	command, args, _ := strings.Cut(strings.TrimSpace(msg.Text), " ")
	switch command {
	case "/start":
		d.handleStart(ctx, msg.Chat.ID)
	case "/products":
		d.admin.HandleList(ctx, msg.Chat.ID)
	case "/addproduct":
		d.admin.HandleAdd(ctx, msg.Chat.ID, args)
	case "/delproduct":
		d.admin.HandleDelete(ctx, msg.Chat.ID, args)
	}
}

// handleStart greets any chat with an inline button opening the web store.
func (d *Dispatcher) handleStart(ctx context.Context, chatID int64) {
	_, err := d.sender.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   "Welcome to the Gorosso store!",
		ReplyMarkup: models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: "🛍️ Open store", WebApp: &models.WebAppInfo{URL: d.webAppURL}},
			}},
		},
	})
	if err != nil {
		d.logger.Error("send start reply failed", "chat_id", chatID, "error", err)
	}
}
