package mapper

import (
	"encoding/json"

	"asknova-be/internal/entity"
	"asknova-be/internal/model"
)

type HistoryMapper struct{}

func NewHistoryMapper() *HistoryMapper {
	return &HistoryMapper{}
}

func (m *HistoryMapper) ToEntity(h *model.History) (*entity.History, error) {
	if h == nil {
		return nil, nil
	}

	sessions := make([]entity.Session, 0)
	if len(h.Sessions) > 0 {
		if err := json.Unmarshal(h.Sessions, &sessions); err != nil {
			return nil, err
		}
	}

	updatedAt := h.UpdatedAt
	return &entity.History{
		Id:        h.Id,
		OwnerId:   h.OwnerId,
		Sessions:  sessions,
		CreatedAt: h.CreatedAt,
		UpdatedAt: &updatedAt,
	}, nil
}

func (m *HistoryMapper) ToModel(h *entity.History) (*model.History, error) {
	if h == nil {
		return nil, nil
	}

	sessions := h.Sessions
	if sessions == nil {
		sessions = []entity.Session{}
	}
	raw, err := json.Marshal(sessions)
	if err != nil {
		return nil, err
	}

	return &model.History{
		Id:       h.Id,
		OwnerId:  h.OwnerId,
		Sessions: raw,
	}, nil
}

type TurnUsageMapper struct{}

func NewTurnUsageMapper() *TurnUsageMapper {
	return &TurnUsageMapper{}
}

func (m *TurnUsageMapper) ToModel(u *entity.TurnUsage) *model.TurnUsage {
	if u == nil {
		return nil
	}
	return &model.TurnUsage{
		Id:            u.Id,
		UserId:        u.UserId,
		SessionId:     u.SessionId,
		PromptChars:   u.PromptChars,
		ResponseChars: u.ResponseChars,
		DatasetCount:  u.DatasetCount,
		CreatedAt:     u.CreatedAt,
	}
}
