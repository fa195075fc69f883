package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/store"
	"github.com/tavola-dev/tavola/internal/types"
)

type OrderInput struct {
	Email   string
	Items   []json.RawMessage
	Total   float64
	Address string
	Contact string
}

type OrderService struct {
	store store.Store
	// strict limits statuses to the known set and its transition table.
	strict bool
}

func NewOrderService(st store.Store, strict bool) *OrderService {
	return &OrderService{store: st, strict: strict}
}

// Create stores the order as sent by the client. Items and total are not
// checked against catalog prices.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	switch {
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	case in.Items == nil:
		return nil, fmt.Errorf("%w: items must be a list", ErrValidation)
	case in.Total == 0:
		return nil, fmt.Errorf("%w: total is required", ErrValidation)
	}

	now := time.Now().UTC()

	order := models.Order{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Items:     in.Items,
		Total:     in.Total,
		Address:   in.Address,
		Contact:   in.Contact,
		Status:    string(types.StatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := store.Update(ctx, s.store, types.CollectionOrders, func(orders []models.Order) ([]models.Order, error) {
		return append(orders, order), nil
	})

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return store.LoadAll[models.Order](ctx, s.store, types.CollectionOrders)
}

func (s *OrderService) ListForUser(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.ListAll(ctx)

	if err != nil {
		return nil, err
	}

	userOrders := []models.Order{}

	for _, o := range orders {
		if o.Email == email {
			userOrders = append(userOrders, o)
		}
	}

	return userOrders, nil
}

// SetStatus changes the order status and returns the updated order together
// with its previous status.
func (s *OrderService) SetStatus(ctx context.Context, id, status string) (*models.Order, string, error) {
	if status == "" {
		return nil, "", fmt.Errorf("%w: status is required", ErrValidation)
	}

	next := types.OrderStatus(status)

	if s.strict && !next.Valid() {
		return nil, "", fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var (
		updated  models.Order
		previous string
	)

	err := store.Update(ctx, s.store, types.CollectionOrders, func(orders []models.Order) ([]models.Order, error) {
		for i := range orders {
			if orders[i].ID != id {
				continue
			}

			current := types.OrderStatus(orders[i].Status)

			if s.strict && !current.CanTransitionTo(next) {
				return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
			}

			previous = orders[i].Status
			orders[i].Status = status
			orders[i].UpdatedAt = time.Now().UTC()

			updated = orders[i]
			return orders, nil
		}

		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	})

	if err != nil {
		return nil, "", err
	}

	return &updated, previous, nil
}
