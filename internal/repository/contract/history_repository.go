package contract

import (
	"context"

	"asknova-be/internal/entity"
	"asknova-be/internal/repository/specification"
)

// HistoryRepository exposes the document store operations the engine relies
// on: find-by-owner, create, and a wholesale save of the whole document.
type HistoryRepository interface {
	Create(ctx context.Context, history *entity.History) error
	// Save replaces the stored document (sessions array included) in one
	// write. Last write wins; callers serialize per owner.
	Save(ctx context.Context, history *entity.History) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.History, error)
}
