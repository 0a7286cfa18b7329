package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/logger"
	"github.com/rushi-mungse/product-microservice/internal/middleware"
	"github.com/rushi-mungse/product-microservice/internal/models"
	"github.com/rushi-mungse/product-microservice/internal/services"
	"github.com/rushi-mungse/product-microservice/internal/validator"
	"go.uber.org/zap"
)

const msgInvalidProductID = "Invalid product id!"

// productInput reads the product fields of a multipart or urlencoded form.
// Ingredients may be repeated.
func productInput(c *gin.Context) models.ProductInput {
	ingredients := c.PostFormArray("ingredients")
	ingredients = append(ingredients, c.PostFormArray("ingredients[]")...)
	return models.ProductInput{
		Name:                    c.PostForm("name"),
		Description:             c.PostForm("description"),
		Size:                    c.PostForm("size"),
		Price:                   c.PostForm("price"),
		Discount:                c.PostForm("discount"),
		Currency:                c.PostForm("currency"),
		Availability:            c.PostForm("availability"),
		PreparationTimeInMinute: c.PostForm("preparationTimeInMinute"),
		Category:                c.PostForm("category"),
		Ingredients:             ingredients,
	}
}

// bindProduct validates the submitted fields and coerces the numeric and
// boolean ones.
func bindProduct(c *gin.Context) (models.ProductFields, error) {
	fields := productInput(c).Fields()
	if err := apperrors.NewValidationError(validator.ProductSchema.Validate(fields)); err != nil {
		return models.ProductFields{}, err
	}
	return models.ParseProductFields(fields)
}

// GetAllProducts (Public)
func (h *Handlers) GetAllProducts(c *gin.Context) {
	products, err := h.Products.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "message": "all product fetched successfully."})
}

// GetProduct (Public)
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := parseID(c, "productId", msgInvalidProductID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct (Admin Only) expects the image in the multipart field "image".
func (h *Handlers) CreateProduct(c *gin.Context) {
	file, ok := middleware.UploadedFileFrom(c)
	if !ok {
		_ = c.Error(services.ErrImageMissing)
		return
	}
	fields, err := bindProduct(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	product, err := h.Products.Create(c.Request.Context(), fields, file.Path)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(c, h.Log).Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("image_url", product.ImageURL),
	)
	c.JSON(http.StatusCreated, gin.H{"product": product, "message": "Product created successfully."})
}

// UpdateProduct (Admin Only) replaces every field. The image is optional.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := parseID(c, "productId", msgInvalidProductID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	fields, err := bindProduct(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var imagePath string
	if file, ok := middleware.UploadedFileFrom(c); ok {
		imagePath = file.Path
	}

	product, err := h.Products.Update(c.Request.Context(), id, fields, imagePath)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product, "message": "Product updated successfully."})
}

// DeleteProduct (Admin Only)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := parseID(c, "productId", msgInvalidProductID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	logger.FromContext(c, h.Log).Info("product deleted", zap.Int64("product_id", id))
	c.JSON(http.StatusOK, gin.H{"productId": id, "message": "Product deleted successfully."})
}
