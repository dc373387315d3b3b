package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gorosso-backend/internal/catalog"

	"github.com/prometheus/client_golang/prometheus"
)

type Store interface {
	ReadAll() []catalog.Product
	Append(p catalog.Product)
	RemoveByID(id int64) bool
}

type Publisher interface {
	Publish(ctx context.Context, event catalog.ProductEvent) error
}

// Service owns catalog mutations: field validation, id assignment, event
// publishing and counters. Reads always go back to the store so every
// caller sees the current file contents.
type Service struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	created   prometheus.Counter
	deleted   prometheus.Counter
}

func New(store Store, publisher Publisher, logger *slog.Logger, created, deleted prometheus.Counter) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		created:   created,
		deleted:   deleted,
	}
}

func (s *Service) ListProducts() []catalog.Product {
	return s.store.ReadAll()
}

// AddProduct trims every field, validates name and price and appends the
// product under a freshly assigned id. A price that does not parse as a
// non-negative integer is rejected outright rather than stored as garbage.
func (s *Service) AddProduct(ctx context.Context, name, price, description, imageURL string) (catalog.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Product{}, catalog.ErrInvalidName
	}

	parsedPrice, err := strconv.ParseInt(strings.TrimSpace(price), 10, 64)
	if err != nil || parsedPrice < 0 {
		return catalog.Product{}, catalog.ErrInvalidPrice
	}

	product := catalog.Product{
		ID:          time.Now().UnixMilli(),
		Name:        name,
		Price:       parsedPrice,
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
	}
	s.store.Append(product)

	if err := s.publisher.Publish(ctx, catalog.ProductEvent{
		EventType: catalog.EventCreated,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("publish product_created event failed",
			"product_id", product.ID,
			"error", err,
		)
	}

	s.created.Inc()
	return product, nil
}

func (s *Service) RemoveProduct(ctx context.Context, id int64) error {
	if !s.store.RemoveByID(id) {
		return catalog.ErrNotFound
	}

	if err := s.publisher.Publish(ctx, catalog.ProductEvent{
		EventType: catalog.EventDeleted,
		ProductID: id,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("publish product_deleted event failed",
			"product_id", id,
			"error", err,
		)
	}

	s.deleted.Inc()
	return nil
}
