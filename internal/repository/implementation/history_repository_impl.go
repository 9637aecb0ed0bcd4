package implementation

import (
	"context"
	"errors"

	"asknova-be/internal/entity"
	"asknova-be/internal/mapper"
	"asknova-be/internal/model"
	"asknova-be/internal/repository/contract"
	"asknova-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HistoryMapper
}

func NewHistoryRepository(db *gorm.DB) contract.HistoryRepository {
	return &HistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewHistoryMapper(),
	}
}

func (r *HistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HistoryRepositoryImpl) Create(ctx context.Context, history *entity.History) error {
	if history.Id == uuid.Nil {
		history.Id = uuid.New()
	}
	m, err := r.mapper.ToModel(history)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	history.CreatedAt = m.CreatedAt
	return nil
}

func (r *HistoryRepositoryImpl) Save(ctx context.Context, history *entity.History) error {
	m, err := r.mapper.ToModel(history)
	if err != nil {
		return err
	}
	// Whole-document replace, keyed by primary key.
	return r.db.WithContext(ctx).
		Model(&model.History{}).
		Where("id = ?", m.Id).
		Updates(map[string]interface{}{"sessions": m.Sessions}).Error
}

func (r *HistoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.History, error) {
	var m model.History
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}
