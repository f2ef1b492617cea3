// Package handler はlistsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
	"skinfolio_backend/internal/feature/lists/transport/http/dto"
	"skinfolio_backend/internal/feature/lists/usecase"
	jwtmw "skinfolio_backend/internal/platform/jwt"
)

// ListUsecase はリスト操作のユースケースを定義します。
type ListUsecase interface {
	Create(ctx context.Context, userID uint, name string, description *string, currency string, public bool) (*entity.List, error)
	Update(ctx context.Context, userID uint, url string, patch usecase.ListPatch) (*entity.List, error)
	Delete(ctx context.Context, userID uint, url string) error
	ListByUser(ctx context.Context, userID uint) ([]entity.List, error)
	Valuation(ctx context.Context, requesterID uint, url string) (*entity.ListValuation, error)
}

// ActionUsecase はアクション操作のユースケースを定義します。
type ActionUsecase interface {
	Add(ctx context.Context, userID uint, url string, in usecase.NewAction) (*entity.ItemAction, error)
	Delete(ctx context.Context, userID uint, url string, actionID int64) error
}

// ListHandler はリストとアクションのHTTPリクエストを処理します。
type ListHandler struct {
	lists   ListUsecase
	actions ActionUsecase
}

// NewListHandler は新しい ListHandler を作成します。
func NewListHandler(lists ListUsecase, actions ActionUsecase) *ListHandler {
	return &ListHandler{lists: lists, actions: actions}
}

// writeError maps the error kind to a status code.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		// 内部エラーの詳細はクライアントに公開しない
		slog.Error("lists request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Valuation は GET /lists/:url を処理します。
func (h *ListHandler) Valuation(c *gin.Context) {
	v, err := h.lists.Valuation(c.Request.Context(), jwtmw.UserID(c), c.Param("url"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewValuationRes(v))
}

// Mine は GET /lists を処理します。
func (h *ListHandler) Mine(c *gin.Context) {
	lists, err := h.lists.ListByUser(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.ListRes, 0, len(lists))
	for i := range lists {
		out = append(out, dto.NewListRes(&lists[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create は POST /lists を処理します。
func (h *ListHandler) Create(c *gin.Context) {
	var req dto.CreateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.lists.Create(c.Request.Context(), jwtmw.UserID(c), req.Name, req.Description, req.Currency, req.Public)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewListRes(l))
}

// Update は PATCH /lists/:url を処理します。
func (h *ListHandler) Update(c *gin.Context) {
	var req dto.UpdateListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := usecase.ListPatch{Name: req.Name, Description: req.Description, Public: req.Public}
	l, err := h.lists.Update(c.Request.Context(), jwtmw.UserID(c), c.Param("url"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListRes(l))
}

// Delete は DELETE /lists/:url を処理します。
func (h *ListHandler) Delete(c *gin.Context) {
	if err := h.lists.Delete(c.Request.Context(), jwtmw.UserID(c), c.Param("url")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAction は POST /lists/:url/actions を処理します。
func (h *ListHandler) AddAction(c *gin.Context) {
	var req dto.AddActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, err := entity.ParseActionKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.actions.Add(c.Request.Context(), jwtmw.UserID(c), c.Param("url"), usecase.NewAction{
		ItemID:    req.ItemID,
		Kind:      kind,
		UnitPrice: *req.UnitPrice,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewActionRes(a))
}

// DeleteAction は DELETE /lists/:url/actions/:id を処理します。
func (h *ListHandler) DeleteAction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action id"})
		return
	}
	if err := h.actions.Delete(c.Request.Context(), jwtmw.UserID(c), c.Param("url"), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
