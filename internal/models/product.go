package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Product represents a catalog entry as persisted in the store.
// Price marshals as a quoted decimal string so monetary values never
// pass through floating point.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Available   bool            `json:"available"`
	Category    Category        `json:"category" gorm:"type:varchar(32)"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// ProductPayload is the wire form of a Product. Pointer fields let the
// validator distinguish an absent key from a zero value.
type ProductPayload struct {
	ID          uint             `json:"id,omitempty"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Available   *bool            `json:"available" validate:"required"`
	Category    string           `json:"category" validate:"required"`
}

// ValidationError reports a payload that cannot become a valid Product.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product data: %s %s", e.Field, e.Reason)
}

var validate = validator.New()

// NewProduct builds a Product from its wire payload without touching the
// store. It returns a *ValidationError when a required key is missing, the
// price is negative, or the category name is not recognized.
func NewProduct(payload ProductPayload) (*Product, error) {
	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		field := strings.ToLower(validationErrors[0].Field())
		return nil, &ValidationError{Field: field, Reason: "is required"}
	}

	if payload.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	category, err := ParseCategory(payload.Category)
	if err != nil {
		return nil, &ValidationError{Field: "category", Reason: err.Error()}
	}

	return &Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Available:   *payload.Available,
		Category:    category,
	}, nil
}

// Payload converts the product back to its wire form.
func (p *Product) Payload() ProductPayload {
	price := p.Price
	available := p.Available
	return ProductPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       &price,
		Available:   &available,
		Category:    string(p.Category),
	}
}
