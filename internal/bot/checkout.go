package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gorosso-backend/internal/catalog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	replyEmptyCart     = "Your cart is empty. Please add some products."
	replyCartFailed    = "We couldn't process your cart. Please try again."
	replyInvoiceFailed = "Something went wrong while creating your invoice. Please try again later."
	invoiceTitle       = "Gorosso order"
	invoiceDescription = "Your Gorosso order:\n"
	minorUnitsPerMajor = 100
	orderPayloadPrefix = "order_"
)

// PaymentSender extends Sender with the invoice surface of the Telegram
// client. *tgbot.Bot satisfies it.
type PaymentSender interface {
	Sender
	SendInvoice(ctx context.Context, params *tgbot.SendInvoiceParams) (*models.Message, error)
	AnswerPreCheckoutQuery(ctx context.Context, params *tgbot.AnswerPreCheckoutQueryParams) (bool, error)
}

type CheckoutCatalog interface {
	ListProducts() []catalog.Product
}

type CheckoutConfig struct {
	ProviderToken string
	Currency      string
	AdminChatID   int64
}

// Checkout turns web-app cart submissions into payment invoices and reacts
// to the payment outcome. No order record survives a completed sale beyond
// the buyer and admin notifications.
type Checkout struct {
	catalog  CheckoutCatalog
	sender   PaymentSender
	cfg      CheckoutConfig
	logger   *slog.Logger
	invoices prometheus.Counter
	payments prometheus.Counter
}

func NewCheckout(cat CheckoutCatalog, sender PaymentSender, cfg CheckoutConfig, logger *slog.Logger, invoices, payments prometheus.Counter) *Checkout {
	return &Checkout{
		catalog:  cat,
		sender:   sender,
		cfg:      cfg,
		logger:   logger,
		invoices: invoices,
		payments: payments,
	}
}

// HandleCart prices a cart payload against a fresh catalog read and requests
// an invoice. Entries that no longer resolve to a product are dropped; a cart
// that prices to zero never reaches the payment provider.
func (c *Checkout) HandleCart(ctx context.Context, chatID int64, raw string) {
	var cart map[string]int
	if err := json.Unmarshal([]byte(raw), &cart); err != nil || len(cart) == 0 {
		c.reply(ctx, chatID, replyEmptyCart)
		return
	}

	prices, total, description := priceCart(c.catalog.ListProducts(), cart)
	if total == 0 {
		c.reply(ctx, chatID, replyCartFailed)
		return
	}

	payload := orderPayloadPrefix + uuid.NewString()
	_, err := c.sender.SendInvoice(ctx, &tgbot.SendInvoiceParams{
		ChatID:        chatID,
		Title:         invoiceTitle,
		Description:   description,
		Payload:       payload,
		ProviderToken: c.cfg.ProviderToken,
		Currency:      c.cfg.Currency,
		Prices:        prices,
	})
	if err != nil {
		c.logger.Error("send invoice failed", "chat_id", chatID, "order", payload, "error", err)
		c.reply(ctx, chatID, replyInvoiceFailed)
		return
	}

	c.invoices.Inc()
	c.logger.Info("invoice issued",
		"chat_id", chatID,
		"order", payload,
		"total", total,
		"currency", c.cfg.Currency,
	)
}

// HandlePreCheckout approves every pre-checkout query. Stock and price are
// not re-validated at this step.
func (c *Checkout) HandlePreCheckout(ctx context.Context, queryID string) {
	_, err := c.sender.AnswerPreCheckoutQuery(ctx, &tgbot.AnswerPreCheckoutQueryParams{
		PreCheckoutQueryID: queryID,
		OK:                 true,
	})
	if err != nil {
		c.logger.Error("answer pre-checkout failed", "query_id", queryID, "error", err)
	}
}

// HandlePayment thanks the buyer and notifies the admin chat about the sale.
func (c *Checkout) HandlePayment(ctx context.Context, msg *models.Message) {
	payment := msg.SuccessfulPayment
	amount := payment.TotalAmount / minorUnitsPerMajor

	c.reply(ctx, msg.Chat.ID, fmt.Sprintf(
		"✅ Payment received! Thank you for your order of %d %s.",
		amount, payment.Currency,
	))

	buyer := "unknown"
	if msg.From != nil {
		buyer = fmt.Sprintf("%s (@%s)", msg.From.FirstName, msg.From.Username)
	}
	c.reply(ctx, c.cfg.AdminChatID, fmt.Sprintf(
		"🎉 New paid order from %s for %d %s.",
		buyer, amount, payment.Currency,
	))

	c.payments.Inc()
	c.logger.Info("payment completed",
		"chat_id", msg.Chat.ID,
		"order", payment.InvoicePayload,
		"total_amount", payment.TotalAmount,
		"currency", payment.Currency,
	)
}

func (c *Checkout) reply(ctx context.Context, chatID int64, text string) {
	_, err := c.sender.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		c.logger.Error("send checkout reply failed", "chat_id", chatID, "error", err)
	}
}

// priceCart resolves cart entries against the catalog snapshot. Unknown ids
// and non-positive quantities contribute nothing. Amounts are in minor
// currency units as the payment provider requires.
func priceCart(products []catalog.Product, cart map[string]int) ([]models.LabeledPrice, int64, string) {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[strconv.FormatInt(p.ID, 10)] = p
	}

	var (
		prices []models.LabeledPrice
		total  int64
	)
	description := strings.Builder{}
	description.WriteString(invoiceDescription)

	for id, quantity := range cart {
		if quantity <= 0 {
			continue
		}
		product, ok := byID[id]
		if !ok {
			continue
		}

		lineTotal := product.Price * int64(quantity)
		total += lineTotal
		prices = append(prices, models.LabeledPrice{
			Label:  fmt.Sprintf("%s x%d", product.Name, quantity),
			Amount: int(lineTotal * minorUnitsPerMajor),
		})
		fmt.Fprintf(&description, "- %s x%d\n", product.Name, quantity)
	}

	return prices, total, description.String()
}
