package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodType string

const (
	FoodTypeUPH   FoodType = "uph"
	FoodTypeFresh FoodType = "fresh"
)

// ValidFoodTypes lists every accepted category, in display order.
var ValidFoodTypes = []FoodType{FoodTypeUPH, FoodTypeFresh}

func (t FoodType) Valid() bool {
	switch t {
	case FoodTypeUPH, FoodTypeFresh:
		return true
	}
	return false
}

// A food record managed through /api/foods
type Food struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Type        FoodType  `gorm:"type:varchar(16);index;not null" json:"type"`
	ImageURL    *string   `gorm:"type:text" json:"imageUrl"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// FoodInput is the create/update payload. Every field is taken as sent;
// normalization happens in services.ValidateFood.
type FoodInput struct {
	Name        string  `json:"name"`
	Ingredients string  `json:"ingredients"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	ImageURL    *string `json:"imageUrl"`
}

// FoodFilter narrows a list query. Zero values mean "no constraint".
type FoodFilter struct {
	Type   FoodType
	Search string
	Limit  int
	Offset int
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

type FoodPage struct {
	Foods      []Food     `json:"foods"`
	Pagination Pagination `json:"pagination"`
}
