package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&service.Error{Kind: service.ErrValidation, Msg: "bad"}, http.StatusBadRequest},
		{&service.Error{Kind: service.ErrUnauthorized, Msg: "no"}, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", service.ErrNotFound), http.StatusNotFound},
		{service.ErrConflict, http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestFormatProduct_FillsDefaults(t *testing.T) {
	price := 499.0
	catID := "69041cbd2d6caf07cf4fcb11"
	v := FormatProduct(&models.Product{Title: "Rug", OriginalPrice: &price, CategoryID: &catID})

	assert.Equal(t, 499.0, v.OriginalPrice)
	assert.Equal(t, 0.0, v.DiscountedPrice)
	assert.Equal(t, catID, v.CategoryID)
	assert.NotNil(t, v.Images)
	assert.NotNil(t, v.MaterialUsed)
	assert.NotNil(t, v.ColorAndTexture)
	assert.NotNil(t, v.FAQs)
	assert.NotNil(t, v.HowToUse.Points)
}
