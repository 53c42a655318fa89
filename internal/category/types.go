package category

import (
	"errors"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// ErrNotFound is returned for non-positive ids and ids with no row.
var ErrNotFound = errors.New("category not found")

// Category is the client-facing shape of a category row.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

func fromRow(row repository.Category) Category {
	return Category{ID: row.ID, Type: row.Type}
}
