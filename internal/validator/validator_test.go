package validator

import (
	"strings"
	"testing"

	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestCategorySchema(t *testing.T) {
	const (
		required = "Category name is required!"
		length   = "Category name length should be at most 50 chars!"
	)

	cases := []struct {
		name  string
		input map[string]string
		want  []apperrors.FieldError
	}{
		{"valid", map[string]string{"name": "Pizza"}, nil},
		{"exactly three", map[string]string{"name": "abc"}, nil},
		{"exactly fifty", map[string]string{"name": strings.Repeat("a", 50)}, nil},
		{"missing", map[string]string{}, []apperrors.FieldError{{Field: "name", Message: required}, {Field: "name", Message: length}}},
		{"blank", map[string]string{"name": "    "}, []apperrors.FieldError{{Field: "name", Message: required}, {Field: "name", Message: length}}},
		{"too short", map[string]string{"name": "ab"}, []apperrors.FieldError{{Field: "name", Message: length}}},
		{"short after trim", map[string]string{"name": "  ab  "}, []apperrors.FieldError{{Field: "name", Message: length}}},
		{"too long", map[string]string{"name": strings.Repeat("a", 51)}, []apperrors.FieldError{{Field: "name", Message: length}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CategorySchema.Validate(tc.input))
		})
	}
}

func TestValidate_TrimsInPlace(t *testing.T) {
	in := map[string]string{"name": "  Burgers \n"}
	assert.Empty(t, CategorySchema.Validate(in))
	assert.Equal(t, "Burgers", in["name"])
}

func TestValidate_LengthCountsCharacters(t *testing.T) {
	// 50 multi-byte runes are within bounds.
	assert.Empty(t, CategorySchema.Validate(map[string]string{"name": strings.Repeat("é", 50)}))
}

func validProduct() map[string]string {
	return map[string]string{
		"name":                    "pizza",
		"description":             "cheesy",
		"size":                    "small",
		"price":                   "200",
		"discount":                "10",
		"currency":                "dollar",
		"availability":            "true",
		"preparationTimeInMinute": "50",
		"category":                "pizza",
		"ingredients":             "protein",
	}
}

func TestProductSchema_Valid(t *testing.T) {
	assert.Empty(t, ProductSchema.Validate(validProduct()))
}

func TestProductSchema_ReportsEveryFieldInOrder(t *testing.T) {
	errs := ProductSchema.Validate(map[string]string{})
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"name", "description", "size", "price", "discount", "currency",
		"availability", "preparationTimeInMinute", "category", "ingredients",
	}, fields)
	assert.Equal(t, "Currency is required!", errs[5].Message)
}

func TestProductSchema_BlankField(t *testing.T) {
	in := validProduct()
	in["currency"] = "   "
	in["ingredients"] = ""
	assert.Equal(t, []apperrors.FieldError{
		{Field: "currency", Message: "Currency is required!"},
		{Field: "ingredients", Message: "Product ingredients is required!"},
	}, ProductSchema.Validate(in))
}
