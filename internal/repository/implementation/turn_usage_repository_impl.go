package implementation

import (
	"context"

	"asknova-be/internal/entity"
	"asknova-be/internal/mapper"
	"asknova-be/internal/model"
	"asknova-be/internal/repository/contract"
	"asknova-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurnUsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TurnUsageMapper
}

func NewTurnUsageRepository(db *gorm.DB) contract.TurnUsageRepository {
	return &TurnUsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewTurnUsageMapper(),
	}
}

func (r *TurnUsageRepositoryImpl) Create(ctx context.Context, usage *entity.TurnUsage) error {
	if usage.Id == uuid.Nil {
		usage.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(usage)).Error
}

func (r *TurnUsageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.TurnUsage{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
