package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/store"
	"github.com/tavola-dev/tavola/internal/types"
)

type DishInput struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"required"`
	Description string  `validate:"required"`
	Category    string  `validate:"required"`
	Image       string  `validate:"required"`
}

type CatalogService struct {
	store store.Store
}

func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{store: st}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Dish, error) {
	return store.LoadAll[models.Dish](ctx, s.store, types.CollectionDishes)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Dish, error) {
	dishes, err := s.List(ctx)

	if err != nil {
		return nil, err
	}

	for i := range dishes {
		if dishes[i].ID == id {
			return &dishes[i], nil
		}
	}

	return nil, fmt.Errorf("%w: dish %s", ErrNotFound, id)
}

func (s *CatalogService) Create(ctx context.Context, in DishInput) (*models.Dish, error) {
	if err := validateRequired(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	dish := models.Dish{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := store.Update(ctx, s.store, types.CollectionDishes, func(dishes []models.Dish) ([]models.Dish, error) {
		return append(dishes, dish), nil
	})

	if err != nil {
		return nil, err
	}

	return &dish, nil
}

// Update overwrites every field of the dish with in. An empty in.Image keeps
// the current image.
func (s *CatalogService) Update(ctx context.Context, id string, in DishInput) (*models.Dish, error) {
	var updated models.Dish

	err := store.Update(ctx, s.store, types.CollectionDishes, func(dishes []models.Dish) ([]models.Dish, error) {
		for i := range dishes {
			if dishes[i].ID != id {
				continue
			}

			dishes[i].Name = in.Name
			dishes[i].Price = in.Price
			dishes[i].Description = in.Description
			dishes[i].Category = in.Category
			if in.Image != "" {
				dishes[i].Image = in.Image
			}
			dishes[i].UpdatedAt = time.Now().UTC()

			updated = dishes[i]
			return dishes, nil
		}

		return nil, fmt.Errorf("%w: dish %s", ErrNotFound, id)
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return store.Update(ctx, s.store, types.CollectionDishes, func(dishes []models.Dish) ([]models.Dish, error) {
		for i := range dishes {
			if dishes[i].ID == id {
				return append(dishes[:i], dishes[i+1:]...), nil
			}
		}

		return nil, fmt.Errorf("%w: dish %s", ErrNotFound, id)
	})
}
