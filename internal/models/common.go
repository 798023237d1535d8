package models

import (
	"errors"
	"time"
)

// ErrStaleVersion is returned by repositories when an optimistic update or
// soft delete matched no live row at the expected version.
var ErrStaleVersion = errors.New("stale entity version")

// Auditable carries the identity, optimistic version and audit timestamps
// shared by every persisted entity.
type Auditable struct {
	ID        string     `db:"id" json:"id"`
	Version   int64      `db:"version" json:"version"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the entity has been soft deleted.
func (a Auditable) IsDeleted() bool {
	return a.DeletedAt != nil
}

// Pagination describes a page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// PageBounds clamps paging input to page >= 1 and 1 <= size <= 100, defaulting to 20.
func PageBounds(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
