package contract

import (
	"context"

	"asknova-be/internal/entity"
	"asknova-be/internal/repository/specification"
)

type TurnUsageRepository interface {
	Create(ctx context.Context, usage *entity.TurnUsage) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
