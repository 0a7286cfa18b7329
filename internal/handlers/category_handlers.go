package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/logger"
	"github.com/rushi-mungse/product-microservice/internal/validator"
	"go.uber.org/zap"
)

const msgInvalidCategoryID = "Invalid category id!"

// categoryInput is accepted as JSON or as form fields.
type categoryInput struct {
	Name string `json:"name" form:"name"`
}

// bindCategory returns the validated, trimmed category name.
func bindCategory(c *gin.Context) (string, error) {
	var in categoryInput
	if err := c.ShouldBind(&in); err != nil && !errors.Is(err, io.EOF) {
		return "", apperrors.BadRequest("Invalid request body")
	}
	fields := map[string]string{"name": in.Name}
	if err := apperrors.NewValidationError(validator.CategorySchema.Validate(fields)); err != nil {
		return "", err
	}
	return fields["name"], nil
}

// GetAllCategories (Public)
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory (Admin Only)
func (h *Handlers) CreateCategory(c *gin.Context) {
	name, err := bindCategory(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(c, h.Log).Info("category created", zap.Int64("category_id", category.ID))
	c.JSON(http.StatusCreated, gin.H{"category": category, "message": "Product category created successfully."})
}

// UpdateCategory (Admin Only) renames a category.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, err := parseID(c, "categoryId", msgInvalidCategoryID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	name, err := bindCategory(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	category, err := h.Categories.Update(c.Request.Context(), id, name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "message": "Product category updated successfully"})
}

// DeleteCategory (Admin Only)
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, err := parseID(c, "categoryId", msgInvalidCategoryID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(c, h.Log).Info("category deleted", zap.Int64("category_id", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Product category deleted successfully"})
}
