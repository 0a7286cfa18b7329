package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/services"
	"go.uber.org/zap"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Categories *services.CategoryService
	Products   *services.ProductService
	Log        *zap.Logger
}

// New wires the services into the handler set used by the router.
func New(categories *services.CategoryService, products *services.ProductService, log *zap.Logger) *Handlers {
	return &Handlers{Categories: categories, Products: products, Log: log}
}

// parseID reads a positive integer path parameter. Anything else is a 400
// with msg, reported before any repository call.
func parseID(c *gin.Context, param, msg string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest(msg)
	}
	return id, nil
}
