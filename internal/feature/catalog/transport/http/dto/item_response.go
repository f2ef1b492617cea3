// Package dto defines data transfer objects for the catalog HTTP API.
package dto

import "skinfolio_backend/internal/feature/catalog/domain/entity"

// ItemRes represents a catalog item in the API response.
type ItemRes struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NewItemRes converts an entity into its response form.
func NewItemRes(it entity.Item) ItemRes {
	return ItemRes{ID: it.ID, Name: it.Name, Image: it.Image}
}
