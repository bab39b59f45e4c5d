package services

import (
	"fmt"
	"net/url"
	"strings"

	"foodmanager/models"
)

type ValidationKind string

const (
	MissingFields   ValidationKind = "missing_fields"
	InvalidEnum     ValidationKind = "invalid_enum"
	InvalidImageURL ValidationKind = "invalid_image_url"
)

// requiredFields is the order missing fields are reported in.
var requiredFields = []string{"name", "ingredients", "description", "type"}

// ValidationError describes why a food payload was rejected. Only the
// fields relevant to Kind are set.
type ValidationError struct {
	Kind ValidationKind

	// MissingFields
	Missing []string
	Present map[string]bool

	// InvalidEnum / InvalidImageURL
	Received   string
	ValidTypes []models.FoodType
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingFields:
		return "missing required fields: " + strings.Join(e.Missing, ", ")
	case InvalidEnum:
		return fmt.Sprintf("invalid food type %q", e.Received)
	case InvalidImageURL:
		return fmt.Sprintf("invalid image url %q", e.Received)
	}
	return "invalid food"
}

// ValidateFood trims every field of in and checks it against the food
// invariants. The returned input is normalized: strings trimmed and an empty
// image URL replaced by nil. Running it on its own output is a no-op.
func ValidateFood(in models.FoodInput) (models.FoodInput, error) {
	out := models.FoodInput{
		Name:        strings.TrimSpace(in.Name),
		Ingredients: strings.TrimSpace(in.Ingredients),
		Description: strings.TrimSpace(in.Description),
		Type:        strings.TrimSpace(in.Type),
		ImageURL:    normalizeImageURL(in.ImageURL),
	}

	present := map[string]bool{
		"name":        out.Name != "",
		"ingredients": out.Ingredients != "",
		"description": out.Description != "",
		"type":        out.Type != "",
	}
	var missing []string
	for _, f := range requiredFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return in, &ValidationError{Kind: MissingFields, Missing: missing, Present: present}
	}

	if !models.FoodType(out.Type).Valid() {
		return in, &ValidationError{
			Kind:       InvalidEnum,
			Received:   in.Type,
			ValidTypes: models.ValidFoodTypes,
		}
	}

	if out.ImageURL != nil && !isAbsoluteHTTPURL(*out.ImageURL) {
		return in, &ValidationError{Kind: InvalidImageURL, Received: *out.ImageURL}
	}

	return out, nil
}

func normalizeImageURL(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	return &s
}

func isAbsoluteHTTPURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
