package models

import (
	"errors"
	"testing"

	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields() map[string]string {
	return ProductInput{
		Name:                    "pizza",
		Description:             "cheesy",
		Size:                    "small",
		Price:                   "200",
		Discount:                "10.5",
		Currency:                "dollar",
		Availability:            "true",
		PreparationTimeInMinute: "50",
		Category:                "pizza",
		Ingredients:             []string{"cheese", " tomato ", ""},
	}.Fields()
}

func TestParseProductFields(t *testing.T) {
	f, err := ParseProductFields(fields())
	require.NoError(t, err)
	assert.Equal(t, ProductFields{
		Name:                    "pizza",
		Description:             "cheesy",
		Price:                   200,
		Currency:                "dollar",
		Availability:            true,
		PreparationTimeInMinute: 50,
		Discount:                10.5,
		Ingredients:             "cheese, tomato",
		Size:                    "small",
		Category:                "pizza",
	}, f)
}

func TestParseProductFields_RejectsNonNumeric(t *testing.T) {
	in := fields()
	in["price"] = "cheap"
	in["availability"] = "yes"
	in["preparationTimeInMinute"] = "-5"

	_, err := ParseProductFields(in)
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))

	got := make([]string, 0, len(verr.Errors))
	for _, e := range verr.Errors {
		got = append(got, e.Field)
	}
	assert.Equal(t, []string{"price", "availability", "preparationTimeInMinute"}, got)
}

func TestParseProductFields_RejectsNonFiniteAndOverflow(t *testing.T) {
	cases := []struct {
		field string
		value string
	}{
		{"price", "NaN"},
		{"price", "Inf"},
		{"price", "+Infinity"},
		{"price", "-Inf"},
		{"price", "1e400"},
		{"discount", "NaN"},
		{"discount", "Infinity"},
		{"discount", "1e400"},
		{"preparationTimeInMinute", "99999999999999999999"},
		{"preparationTimeInMinute", "1e3"},
	}
	for _, tc := range cases {
		t.Run(tc.field+"="+tc.value, func(t *testing.T) {
			in := fields()
			in[tc.field] = tc.value

			_, err := ParseProductFields(in)
			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tc.field, verr.Errors[0].Field)
		})
	}
}

func TestProductFieldsApply_KeepsImage(t *testing.T) {
	p := &Product{ID: 3, Name: "old", ImageURL: "https://cdn/x.png"}
	f, err := ParseProductFields(fields())
	require.NoError(t, err)

	f.Apply(p)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "pizza", p.Name)
	assert.Equal(t, "https://cdn/x.png", p.ImageURL)
	require.NotNil(t, p.Price)
	assert.Equal(t, 200.0, *p.Price)
	require.NotNil(t, p.Category)
	assert.Equal(t, "pizza", *p.Category)
}
