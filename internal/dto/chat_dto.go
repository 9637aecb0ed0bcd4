package dto

import (
	"time"
)

// --- Inbound event payloads ---

type GenerateRequest struct {
	UserPrompt   string `json:"userPrompt" validate:"required"`
	TrainingData string `json:"trainingData,omitempty"`
	UserId       string `json:"userId" validate:"required"`
	SessionId    string `json:"sessionId,omitempty"`
}

type GetSessionsRequest struct {
	UserId string `json:"userId" validate:"required"`
}

type GetHistoryRequest struct {
	UserId    string `json:"userId" validate:"required"`
	SessionId string `json:"sessionId" validate:"required"`
}

type CreateSessionRequest struct {
	UserId string `json:"userId" validate:"required"`
	Title  string `json:"title,omitempty"`
}

type DeleteSessionRequest struct {
	UserId    string `json:"userId" validate:"required"`
	SessionId string `json:"sessionId" validate:"required"`
}

// RecommendationRequest drives the REST-only keyword/dataset lookup.
type RecommendationRequest struct {
	UserPrompt string `json:"userPrompt" validate:"required"`
	UserId     string `json:"userId" validate:"required"`
}

// --- Outbound event payloads ---

type DatasetDTO struct {
	Title         string `json:"title"`
	Url           string `json:"url"`
	Subtitle      string `json:"subtitle"`
	CreatorName   string `json:"creatorName"`
	DownloadCount int    `json:"downloadCount"`
}

type ChunkEvent struct {
	SessionId  string `json:"sessionId"`
	Chunk      string `json:"chunk"`
	IsComplete bool   `json:"isComplete"`
}

type GenerateResult struct {
	SessionId  string       `json:"sessionId"`
	Response   string       `json:"response"`
	Datasets   []DatasetDTO `json:"datasets"`
	IsComplete bool         `json:"isComplete"`
}

type SessionSummary struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	LastActive   time.Time `json:"lastActive"`
	MessageCount int       `json:"messageCount"`
}

type SessionsResult struct {
	Sessions []SessionSummary `json:"sessions"`
}

type MessageDTO struct {
	Role         string       `json:"role"`
	Content      string       `json:"content"`
	Datasets     []DatasetDTO `json:"datasets,omitempty"`
	TrainingData string       `json:"trainingData,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

type HistoryResult struct {
	SessionId    string       `json:"sessionId,omitempty"`
	Title        string       `json:"title,omitempty"`
	Messages     []MessageDTO `json:"messages"`
	LastResponse string       `json:"lastResponse,omitempty"`
	Datasets     []DatasetDTO `json:"datasets,omitempty"`
	IsEmpty      bool         `json:"isEmpty"`
}

type SessionCreatedResult struct {
	SessionId string `json:"sessionId"`
	Title     string `json:"title"`
}

type SessionDeletedResult struct {
	SessionId string `json:"sessionId"`
}

type RecommendationResult struct {
	Keyword  string       `json:"keyword"`
	TaskType string       `json:"taskType"`
	Datasets []DatasetDTO `json:"datasets"`
}

type ErrorEvent struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
