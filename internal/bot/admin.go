package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gorosso-backend/internal/catalog"

	tgbot "github.com/go-telegram/bot"
)

const (
	replyNoPermission = "You don't have permission to run this command."
	replyEmptyCatalog = "The catalog is empty."
	replyAddUsage     = "Invalid format. Use:\n/addproduct Name;Price;Description;ImageURL"
	replyDeleteUsage  = "Invalid format. Use:\n/delproduct ID"

	addProductFieldCount = 4
)

type Catalog interface {
	ListProducts() []catalog.Product
	AddProduct(ctx context.Context, name, price, description, imageURL string) (catalog.Product, error)
	RemoveProduct(ctx context.Context, id int64) error
}

// Admin interprets the catalog management commands. Every command is gated
// on the single configured admin chat; other chats get a fixed rejection and
// never reach a mutation.
type Admin struct {
	catalog     Catalog
	sender      Sender
	adminChatID int64
	currency    string
	logger      *slog.Logger
}

func NewAdmin(cat Catalog, sender Sender, adminChatID int64, currency string, logger *slog.Logger) *Admin {
	return &Admin{
		catalog:     cat,
		sender:      sender,
		adminChatID: adminChatID,
		currency:    currency,
		logger:      logger,
	}
}

func (a *Admin) HandleList(ctx context.Context, chatID int64) {
	if !a.authorize(ctx, chatID) {
		return
	}

	products := a.catalog.ListProducts()
	if len(products) == 0 {
		a.reply(ctx, chatID, replyEmptyCatalog)
		return
	}

	var b strings.Builder
	b.WriteString("📋 Products:\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "ID: %d\nName: %s\nPrice: %d %s\n\n", p.ID, p.Name, p.Price, a.currency)
	}
	a.reply(ctx, chatID, b.String())
}

func (a *Admin) HandleAdd(ctx context.Context, chatID int64, args string) {
	if !a.authorize(ctx, chatID) {
		return
	}

	fields := strings.Split(args, ";")
	if len(fields) != addProductFieldCount {
		a.reply(ctx, chatID, replyAddUsage)
		return
	}

	product, err := a.catalog.AddProduct(ctx, fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidName) || errors.Is(err, catalog.ErrInvalidPrice) {
			a.reply(ctx, chatID, replyAddUsage)
			return
		}
		a.logger.Error("add product failed", "error", err)
		a.reply(ctx, chatID, replyAddUsage)
		return
	}

	a.reply(ctx, chatID, fmt.Sprintf("✅ Product %q has been added!", product.Name))
}

func (a *Admin) HandleDelete(ctx context.Context, chatID int64, args string) {
	if !a.authorize(ctx, chatID) {
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		a.reply(ctx, chatID, replyDeleteUsage)
		return
	}

	if err := a.catalog.RemoveProduct(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			a.reply(ctx, chatID, fmt.Sprintf("❌ Product with ID %d not found.", id))
			return
		}
		a.logger.Error("remove product failed", "product_id", id, "error", err)
		return
	}

	a.reply(ctx, chatID, fmt.Sprintf("🗑️ Product with ID %d has been deleted.", id))
}

func (a *Admin) authorize(ctx context.Context, chatID int64) bool {
	if chatID == a.adminChatID {
		return true
	}
	a.reply(ctx, chatID, replyNoPermission)
	return false
}

func (a *Admin) reply(ctx context.Context, chatID int64, text string) {
	_, err := a.sender.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		a.logger.Error("send admin reply failed", "chat_id", chatID, "error", err)
	}
}
