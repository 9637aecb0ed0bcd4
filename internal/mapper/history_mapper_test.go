package mapper

import (
	"testing"
	"time"

	"asknova-be/internal/entity"
	"asknova-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryMapperRoundTrip(t *testing.T) {
	m := NewHistoryMapper()
	ts := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	src := &entity.History{
		Id:      uuid.New(),
		OwnerId: "user-1",
		Sessions: []entity.Session{
			{
				SessionId: "1700000000000",
				Title:     "build a churn model...",
				Messages: []entity.Message{
					{Role: "user", Content: "build a churn model", TrainingData: "Dataset: Telco\nURL: http://x", Timestamp: ts},
					{Role: "assistant", Content: "<code>\nmodel\n</code>", Timestamp: ts},
				},
				Datasets: []entity.DatasetDescriptor{
					{Title: "Telco", Url: "http://x", CreatorName: "alice", DownloadCount: 42},
				},
				LastActive: ts,
			},
		},
	}

	stored, err := m.ToModel(src)
	require.NoError(t, err)
	assert.Equal(t, src.Id, stored.Id)
	assert.Equal(t, "user-1", stored.OwnerId)

	got, err := m.ToEntity(stored)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 1)

	session := got.Sessions[0]
	assert.Equal(t, "1700000000000", session.SessionId)
	assert.Equal(t, "build a churn model...", session.Title)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "Dataset: Telco\nURL: http://x", session.Messages[0].TrainingData)
	assert.Equal(t, "<code>\nmodel\n</code>", session.Messages[1].Content)
	require.Len(t, session.Datasets, 1)
	assert.Equal(t, 42, session.Datasets[0].DownloadCount)
}

func TestHistoryMapperNilSessionsBecomeEmptyList(t *testing.T) {
	m := NewHistoryMapper()

	stored, err := m.ToModel(&entity.History{Id: uuid.New(), OwnerId: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(stored.Sessions))

	got, err := m.ToEntity(&model.History{Id: stored.Id, OwnerId: "user-2"})
	require.NoError(t, err)
	assert.NotNil(t, got.Sessions)
	assert.Empty(t, got.Sessions)
}
