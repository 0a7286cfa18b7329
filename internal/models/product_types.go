package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rushi-mungse/product-microservice/internal/apperrors"
)

var errInvalidAmount = errors.New("amount must be finite and non-negative")

// Product is the model for the 'products' table.
// Category is a free-text label, not a reference to the categories table.
type Product struct {
	ID                      int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                    string   `json:"name" gorm:"not null"`
	Description             string   `json:"description" gorm:"type:text;not null"`
	Price                   *float64 `json:"price"`
	Currency                string   `json:"currency" gorm:"not null"`
	ImageURL                string   `json:"imageUrl" gorm:"column:image_url;type:text;not null"`
	Availability            bool     `json:"availability" gorm:"not null"`
	PreparationTimeInMinute int      `json:"preparationTimeInMinute" gorm:"column:preparation_time_in_minute;not null"`
	Discount                float64  `json:"discount" gorm:"not null"`
	Ingredients             string   `json:"ingredients" gorm:"type:text;not null"`
	Size                    *string  `json:"size"`
	Category                *string  `json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// ProductInput holds the raw submitted product fields.
type ProductInput struct {
	Name                    string
	Description             string
	Size                    string
	Price                   string
	Discount                string
	Currency                string
	Availability            string
	PreparationTimeInMinute string
	Category                string
	Ingredients             []string
}

// Fields returns the input keyed by form field name, ingredients joined.
func (in ProductInput) Fields() map[string]string {
	return map[string]string{
		"name":                    in.Name,
		"description":             in.Description,
		"size":                    in.Size,
		"price":                   in.Price,
		"discount":                in.Discount,
		"currency":                in.Currency,
		"availability":            in.Availability,
		"preparationTimeInMinute": in.PreparationTimeInMinute,
		"category":                in.Category,
		"ingredients":             JoinIngredients(in.Ingredients),
	}
}

// ProductFields are the typed, mutable columns of a product.
type ProductFields struct {
	Name                    string
	Description             string
	Price                   float64
	Currency                string
	Availability            bool
	PreparationTimeInMinute int
	Discount                float64
	Ingredients             string
	Size                    string
	Category                string
}

// ParseProductFields coerces validated, trimmed fields. Values that are not
// numbers or booleans are reported as field errors.
func ParseProductFields(f map[string]string) (ProductFields, error) {
	var errs []apperrors.FieldError
	out := ProductFields{
		Name:        f["name"],
		Description: f["description"],
		Currency:    f["currency"],
		Ingredients: f["ingredients"],
		Size:        f["size"],
		Category:    f["category"],
	}

	var err error
	if out.Price, err = parseAmount(f["price"]); err != nil {
		errs = append(errs, apperrors.FieldError{Field: "price", Message: "Product price must be a non-negative number!"})
	}
	if out.Discount, err = parseAmount(f["discount"]); err != nil {
		errs = append(errs, apperrors.FieldError{Field: "discount", Message: "Product discount must be a non-negative number!"})
	}
	if out.Availability, err = strconv.ParseBool(f["availability"]); err != nil {
		errs = append(errs, apperrors.FieldError{Field: "availability", Message: "Product availability must be true or false!"})
	}
	if out.PreparationTimeInMinute, err = strconv.Atoi(f["preparationTimeInMinute"]); err != nil || out.PreparationTimeInMinute < 0 {
		errs = append(errs, apperrors.FieldError{Field: "preparationTimeInMinute", Message: "Preparation time must be a non-negative whole number!"})
	}

	if err := apperrors.NewValidationError(errs); err != nil {
		return ProductFields{}, err
	}
	return out, nil
}

// parseAmount accepts finite, non-negative decimals only.
func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, errInvalidAmount
	}
	return v, nil
}

// Apply overwrites every mutable column of p with f. imageUrl is not touched.
func (f ProductFields) Apply(p *Product) {
	price, size, category := f.Price, f.Size, f.Category
	p.Name = f.Name
	p.Description = f.Description
	p.Price = &price
	p.Currency = f.Currency
	p.Availability = f.Availability
	p.PreparationTimeInMinute = f.PreparationTimeInMinute
	p.Discount = f.Discount
	p.Ingredients = f.Ingredients
	p.Size = &size
	p.Category = &category
}

// JoinIngredients stores a submitted ingredient list as one text value.
func JoinIngredients(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, ", ")
}
