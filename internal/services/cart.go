package services

import (
	"context"
	"fmt"

	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/store"
	"github.com/tavola-dev/tavola/internal/types"
)

type CartItemInput struct {
	DishID      string  `validate:"required"`
	Name        string  `validate:"required"`
	Price       float64 `validate:"required"`
	Image       string  `validate:"required"`
	Description string  `validate:"required"`
	Quantity    int     `validate:"required"`
}

type CartService struct {
	store   store.Store
	catalog *CatalogService
}

func NewCartService(st store.Store) *CartService {
	return &CartService{
		store:   st,
		catalog: NewCatalogService(st),
	}
}

// Get returns the user's cart lines resolved against the current catalog.
// Lines whose dish was deleted keep their stored snapshot and are marked
// unavailable.
func (s *CartService) Get(ctx context.Context, email string) ([]types.CartLine, error) {
	carts, err := store.LoadAll[models.Cart](ctx, s.store, types.CollectionCarts)

	if err != nil {
		return nil, err
	}

	lines := []types.CartLine{}

	cart := findCart(carts, email)

	if cart == nil || len(cart.Items) == 0 {
		return lines, nil
	}

	dishes, err := s.catalog.List(ctx)

	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}

	for _, item := range cart.Items {
		dish, ok := byID[item.DishID]

		if !ok {
			lines = append(lines, types.CartLine{
				DishID:      item.DishID,
				Name:        item.Name,
				Price:       item.Price,
				Image:       item.Image,
				Description: item.Description,
				Quantity:    item.Quantity,
				Available:   false,
			})
			continue
		}

		lines = append(lines, types.CartLine{
			DishID:      dish.ID,
			Name:        dish.Name,
			Price:       dish.Price,
			Image:       dish.Image,
			Description: dish.Description,
			Category:    dish.Category,
			Quantity:    item.Quantity,
			Available:   true,
		})
	}

	return lines, nil
}

func (s *CartService) AddItem(ctx context.Context, email string, in CartItemInput) error {
	if err := validateRequired(in); err != nil {
		return err
	}

	if in.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	return store.Update(ctx, s.store, types.CollectionCarts, func(carts []models.Cart) ([]models.Cart, error) {
		cart := findCart(carts, email)

		if cart == nil {
			carts = append(carts, models.Cart{Email: email, Items: []models.CartItem{}})
			cart = &carts[len(carts)-1]
		}

		for i := range cart.Items {
			if cart.Items[i].DishID == in.DishID {
				cart.Items[i].Quantity += in.Quantity
				return carts, nil
			}
		}

		cart.Items = append(cart.Items, models.CartItem{
			DishID:      in.DishID,
			Name:        in.Name,
			Price:       in.Price,
			Image:       in.Image,
			Description: in.Description,
			Quantity:    in.Quantity,
		})

		return carts, nil
	})
}

// Clear drops the user's cart. Clearing a missing cart is not an error.
func (s *CartService) Clear(ctx context.Context, email string) error {
	return store.Update(ctx, s.store, types.CollectionCarts, func(carts []models.Cart) ([]models.Cart, error) {
		kept := carts[:0]

		for _, c := range carts {
			if c.Email != email {
				kept = append(kept, c)
			}
		}

		return kept, nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, email, dishID string) error {
	return store.Update(ctx, s.store, types.CollectionCarts, func(carts []models.Cart) ([]models.Cart, error) {
		cart := findCart(carts, email)

		if cart == nil {
			return nil, fmt.Errorf("%w: cart for %s", ErrNotFound, email)
		}

		for i := range cart.Items {
			if cart.Items[i].DishID == dishID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return carts, nil
			}
		}

		return nil, fmt.Errorf("%w: dish %s in cart", ErrNotFound, dishID)
	})
}

func findCart(carts []models.Cart, email string) *models.Cart {
	for i := range carts {
		if carts[i].Email == email {
			return &carts[i]
		}
	}

	return nil
}
