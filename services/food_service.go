package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodmanager/models"

	"gorm.io/gorm"
)

const DefaultPageLimit = 50

var ErrFoodNotFound = errors.New("food not found")

// FoodService owns the foods table. Every operation touches at most one row,
// so no explicit transactions are used.
type FoodService struct {
	db     *gorm.DB
	events *FoodEvents
}

// NewFoodService builds the service. events may be nil.
func NewFoodService(db *gorm.DB, events *FoodEvents) *FoodService {
	return &FoodService{db: db, events: events}
}

// List returns one page of foods matching f, newest first, together with the
// number of matches ignoring pagination.
func (s *FoodService) List(ctx context.Context, f models.FoodFilter) (*models.FoodPage, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&models.Food{}).
		Scopes(matchFilter(f)).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count foods: %w", err)
	}

	var foods []models.Food
	if err := s.db.WithContext(ctx).
		Scopes(matchFilter(f)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if foods == nil {
		foods = []models.Food{}
	}

	return &models.FoodPage{
		Foods: foods,
		Pagination: models.Pagination{
			Total:   total,
			Limit:   f.Limit,
			Offset:  f.Offset,
			HasMore: int64(f.Offset)+int64(f.Limit) < total,
		},
	}, nil
}

// matchFilter applies the type and search predicates shared by the page
// query and the count query. Postgres folds case with ILIKE; other dialects
// fall back to LOWER(), which SQLite applies to ASCII only.
func matchFilter(f models.FoodFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Type.Valid() {
			db = db.Where("type = ?", f.Type)
		}
		if f.Search != "" {
			if db.Dialector.Name() == "postgres" {
				pattern := "%" + escapeLike(f.Search) + "%"
				db = db.Where(
					"(name ILIKE ? ESCAPE '\\' OR description ILIKE ? ESCAPE '\\' OR ingredients ILIKE ? ESCAPE '\\')",
					pattern, pattern, pattern,
				)
			} else {
				pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
				db = db.Where(
					"(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(ingredients) LIKE ? ESCAPE '\\')",
					pattern, pattern, pattern,
				)
			}
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (s *FoodService) Create(ctx context.Context, in models.FoodInput) (*models.Food, error) {
	valid, err := ValidateFood(in)
	if err != nil {
		return nil, err
	}

	food := &models.Food{
		Name:        valid.Name,
		Ingredients: valid.Ingredients,
		Description: valid.Description,
		Type:        models.FoodType(valid.Type),
		ImageURL:    valid.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}

	s.publish(FoodCreated, food.ID, food)
	return food, nil
}

func (s *FoodService) Get(ctx context.Context, id string) (*models.Food, error) {
	var food models.Food
	err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get food %s: %w", id, err)
	}
	return &food, nil
}

// Update replaces every editable field of the food. The payload is validated
// first, then the id is resolved, then the row is written.
func (s *FoodService) Update(ctx context.Context, id string, in models.FoodInput) (*models.Food, error) {
	valid, err := ValidateFood(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Model(existing).
		Select("name", "ingredients", "description", "type", "image_url", "updated_at").
		Updates(&models.Food{
			Name:        valid.Name,
			Ingredients: valid.Ingredients,
			Description: valid.Description,
			Type:        models.FoodType(valid.Type),
			ImageURL:    valid.ImageURL,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update food %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrFoodNotFound
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(FoodUpdated, id, updated)
	return updated, nil
}

// Delete removes the food permanently. A missing id is reported, never
// treated as success.
func (s *FoodService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&models.Food{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete food %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFoodNotFound
	}

	s.publish(FoodDeleted, id, nil)
	return nil
}

func (s *FoodService) publish(kind, id string, food *models.Food) {
	if s.events == nil {
		return
	}
	s.events.Publish(FoodEvent{Kind: kind, ID: id, Food: food})
}
