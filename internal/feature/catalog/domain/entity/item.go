// Package entity defines the domain models for the catalog feature.
package entity

// Item is an immutable catalog entry (a tradable skin, case, sticker...).
// Items are loaded once at startup and shared read-only by every request.
type Item struct {
	ID    int64  // Catalog identifier referenced by list actions
	Name  string // Market hash name, globally unique
	Image string // Image URL
}
