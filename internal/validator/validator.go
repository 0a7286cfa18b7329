// Package validator checks raw request fields against declarative schemas.
// Every rule runs, so a response always carries the complete list of
// problems in the order the schema declares its fields.
package validator

import (
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
)

var validate = playground.New()

// Rule describes the checks for one field.
type Rule struct {
	Field    string
	Trim     bool
	Required bool
	// Min and Max bound the length in characters. Zero disables a bound.
	Min int
	Max int
	// Message is reported when a required field is empty.
	Message string
	// LengthMessage is reported when a bound is violated. It falls back to
	// Message.
	LengthMessage string
}

// Schema is an ordered list of rules.
type Schema []Rule

// Validate checks input against s. Trimmed values are written back to
// input. A field may produce both its required and its length error.
func (s Schema) Validate(input map[string]string) []apperrors.FieldError {
	var errs []apperrors.FieldError
	for _, r := range s {
		v := input[r.Field]
		if r.Trim {
			v = strings.TrimSpace(v)
			if _, ok := input[r.Field]; ok {
				input[r.Field] = v
			}
		}

		if r.Required && v == "" {
			errs = append(errs, apperrors.FieldError{Field: r.Field, Message: r.Message})
		}
		if tag := r.lengthTag(); tag != "" {
			if err := validate.Var(v, tag); err != nil {
				msg := r.LengthMessage
				if msg == "" {
					msg = r.Message
				}
				errs = append(errs, apperrors.FieldError{Field: r.Field, Message: msg})
			}
		}
	}
	return errs
}

func (r Rule) lengthTag() string {
	var parts []string
	if r.Min > 0 {
		parts = append(parts, fmt.Sprintf("min=%d", r.Min))
	}
	if r.Max > 0 {
		parts = append(parts, fmt.Sprintf("max=%d", r.Max))
	}
	return strings.Join(parts, ",")
}

var CategorySchema = Schema{
	{
		Field:         "name",
		Trim:          true,
		Required:      true,
		Min:           3,
		Max:           50,
		Message:       "Category name is required!",
		LengthMessage: "Category name length should be at most 50 chars!",
	},
}

var ProductSchema = Schema{
	required("name", "Product name is required!"),
	required("description", "Product description is required!"),
	required("size", "Product size is required!"),
	required("price", "Product price is required!"),
	required("discount", "Product discount is required!"),
	required("currency", "Currency is required!"),
	required("availability", "Product availability is required!"),
	required("preparationTimeInMinute", "Preparation time is required!"),
	required("category", "Product category is required!"),
	required("ingredients", "Product ingredients is required!"),
}

func required(field, msg string) Rule {
	return Rule{Field: field, Trim: true, Required: true, Message: msg}
}
