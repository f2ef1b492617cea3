// Package domain defines domain-level errors for the lists feature.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the lists feature wraps exactly one of
// them so that the transport layer can classify it with errors.Is.
var (
	// ErrNotFound indicates that a list, action or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates that the request contradicts the current state,
	// e.g. the list is deleted or a sell exceeds the held quantity.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates that the caller does not own the list.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal indicates a data integrity or programming error.
	ErrInternal = errors.New("internal error")

	// ErrInvalidInput indicates a malformed request value.
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrListNotFound       = fmt.Errorf("%w: list", ErrNotFound)
	ErrActionNotFound     = fmt.Errorf("%w: action", ErrNotFound)
	ErrItemNotFound       = fmt.Errorf("%w: item", ErrNotFound)
	ErrListDeleted        = fmt.Errorf("%w: list is deleted", ErrConflict)
	ErrDuplicateListName  = fmt.Errorf("%w: list name already in use", ErrConflict)
	ErrInsufficientAmount = fmt.Errorf("%w: sell exceeds held amount", ErrConflict)
	ErrNotOwner           = fmt.Errorf("%w: list belongs to another user", ErrUnauthorized)

	// ErrNegativeItemCount means the replayed quantity of an item went below zero.
	ErrNegativeItemCount = fmt.Errorf("%w: item count went negative", ErrInternal)
	// ErrEmptyLedger means a sell was replayed before any buy.
	ErrEmptyLedger = fmt.Errorf("%w: sell without cost basis", ErrInternal)
	// ErrValueOverflow means a replayed money or quantity total left the int64 range.
	ErrValueOverflow = fmt.Errorf("%w: value overflow", ErrInternal)
	// ErrUnsupportedCurrency means no conversion exists for the list currency.
	ErrUnsupportedCurrency = fmt.Errorf("%w: unimplemented currency", ErrInternal)
	// ErrUnknownItem means an action references an id missing from the catalog.
	ErrUnknownItem = fmt.Errorf("%w: item id not in catalog", ErrInternal)
)
