package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"asknova-be/internal/constant"
	"asknova-be/internal/dto"
	"asknova-be/internal/pkg/logger"
	"asknova-be/internal/service"
)

// Envelope is the wire frame for every inbound and outbound event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EmitFunc writes one outbound event back to the requesting connection.
type EmitFunc func(event string, data interface{})

// Dispatcher routes inbound envelopes to the conversation engine. Every
// request gets its own emitter closure, so replies and stream fragments are
// correlated to the requesting connection by construction.
type Dispatcher struct {
	service service.IConversationService
	logger  logger.ILogger
}

func NewDispatcher(svc service.IConversationService, log logger.ILogger) *Dispatcher {
	return &Dispatcher{service: svc, logger: log}
}

// Dispatch handles one inbound frame. Blocking for the duration of the
// operation; callers run it on its own goroutine per message.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte, emit EmitFunc) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		emit(constant.EventError, &dto.ErrorEvent{
			Message: "Malformed event frame",
			Type:    constant.ErrTypeInvalidInput,
		})
		return
	}

	switch env.Event {
	case constant.EventGenerateResponse:
		d.handleGenerate(ctx, env.Data, emit)

	case constant.EventGetSessions:
		var req dto.GetSessionsRequest
		if !decode(env.Data, &req, emit) {
			return
		}
		result, err := d.service.GetSessions(ctx, &req)
		if err != nil {
			emitError(emit, err)
			return
		}
		emit(constant.EventSessionsResult, result)

	case constant.EventGetHistory:
		var req dto.GetHistoryRequest
		if !decode(env.Data, &req, emit) {
			return
		}
		result, err := d.service.GetHistory(ctx, &req)
		if err != nil {
			emitError(emit, err)
			return
		}
		emit(constant.EventHistoryResult, result)

	case constant.EventCreateSession:
		var req dto.CreateSessionRequest
		if !decode(env.Data, &req, emit) {
			return
		}
		result, err := d.service.CreateSession(ctx, &req)
		if err != nil {
			emitError(emit, err)
			return
		}
		emit(constant.EventSessionCreated, result)

	case constant.EventDeleteSession:
		var req dto.DeleteSessionRequest
		if !decode(env.Data, &req, emit) {
			return
		}
		result, err := d.service.DeleteSession(ctx, &req)
		if err != nil {
			emitError(emit, err)
			return
		}
		emit(constant.EventSessionDeleted, result)

	default:
		emit(constant.EventError, &dto.ErrorEvent{
			Message: fmt.Sprintf("Unknown event %q", env.Event),
			Type:    constant.ErrTypeInvalidInput,
		})
	}
}

func (d *Dispatcher) handleGenerate(ctx context.Context, data json.RawMessage, emit EmitFunc) {
	var req dto.GenerateRequest
	if !decode(data, &req, emit) {
		return
	}

	result, err := d.service.HandleTurn(ctx, &req, func(chunk *dto.ChunkEvent) {
		emit(constant.EventGenerateResponseChunk, chunk)
	})
	if err != nil {
		emitError(emit, err)
		return
	}
	emit(constant.EventGenerateResponseResult, result)
}

func decode(data json.RawMessage, target interface{}, emit EmitFunc) bool {
	if err := json.Unmarshal(data, target); err != nil {
		emit(constant.EventError, &dto.ErrorEvent{
			Message: "Malformed event payload",
			Type:    constant.ErrTypeInvalidInput,
		})
		return false
	}
	return true
}

func emitError(emit EmitFunc, err error) {
	var engineErr *dto.EngineError
	if errors.As(err, &engineErr) {
		emit(constant.EventError, &dto.ErrorEvent{
			Message: engineErr.Message,
			Type:    engineErr.Type,
		})
		return
	}
	emit(constant.EventError, &dto.ErrorEvent{
		Message: err.Error(),
		Type:    constant.ErrTypeResponseGeneration,
	})
}
