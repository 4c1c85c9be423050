package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Edutrack/internal/pagination"
)

// Relation describes a paginated child collection shown under its parent.
type Relation struct {
	Name        string
	DefaultSize int
	Order       string
}

var (
	MessagesRelation = Relation{Name: "messages", DefaultSize: 30, Order: "created_at DESC, id DESC"}
	TopicsRelation   = Relation{Name: "topics", DefaultSize: 15, Order: "created_at ASC, id ASC"}
)

// ChildLoader loads one page of a parent's children in the given order.
type ChildLoader[C any] func(ctx context.Context, parentID uint, order string, params pagination.Params) (pagination.Page[C], error)

// AssembleChildren resolves page and size against the relation's default and
// loads that page of children through load, converting each with convert. A
// parent without children yields an empty page.
func AssembleChildren[C, R any](ctx context.Context, parentID uint, rel Relation, page, size string, load ChildLoader[C], convert func(C) R) (pagination.Page[R], error) {
	params := pagination.ParseParams(page, size, rel.DefaultSize)
	children, err := load(ctx, parentID, rel.Order, params)
	if err != nil {
		if errors.Is(err, pagination.ErrPageOutOfRange) {
			return pagination.Page[R]{}, notFoundf("invalid %s page", rel.Name)
		}
		return pagination.Page[R]{}, fmt.Errorf("error loading %s of %d: %w", rel.Name, parentID, err)
	}
	return pagination.Map(children, convert), nil
}
