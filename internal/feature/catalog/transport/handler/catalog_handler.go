// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skinfolio_backend/internal/feature/catalog/domain/entity"
	"skinfolio_backend/internal/feature/catalog/transport/http/dto"
	"skinfolio_backend/internal/feature/catalog/usecase"
)

// CatalogUsecase はカタログ検索のユースケースです。
type CatalogUsecase interface {
	Search(ctx context.Context, q string, limit int) ([]entity.Item, error)
	GetItem(ctx context.Context, id int64) (entity.Item, error)
}

// CatalogHandler はカタログのHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は新しい CatalogHandler を作成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Search は GET /items?q=&limit= を処理します。
func (h *CatalogHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = v
	}

	items, err := h.uc.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		slog.Error("catalog search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	out := make([]dto.ItemRes, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewItemRes(it))
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /items/:id を処理します。
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	it, err := h.uc.GetItem(c.Request.Context(), id)
	if errors.Is(err, usecase.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewItemRes(it))
}
