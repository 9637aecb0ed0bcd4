package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"asknova-be/internal/constant"
	"asknova-be/internal/dto"
	"asknova-be/internal/entity"
	"asknova-be/internal/mapper"
	"asknova-be/internal/pkg/logger"
	"asknova-be/internal/repository/contract"
	"asknova-be/internal/repository/memory"
	"asknova-be/internal/repository/specification"
	"asknova-be/pkg/ai/keyword"
	"asknova-be/pkg/ai/prompt"
	"asknova-be/pkg/kaggle"
	"asknova-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-playground/validator/v10"
)

// EmitChunk delivers one streamed fragment to the caller of the current turn.
// Each request carries its own emitter, so fragments and terminal results can
// never cross between concurrent turns.
type EmitChunk func(event *dto.ChunkEvent)

// RelevanceGate decides whether a prompt is an ML task at all.
type RelevanceGate interface {
	IsMLPrompt(ctx context.Context, prompt string) (bool, error)
}

// KeywordExtractor extracts the dataset-search keyword pair.
type KeywordExtractor interface {
	Extract(ctx context.Context, prompt string) (keyword.Keywords, error)
}

// DatasetSearcher is the black-box keyword -> ranked-list provider.
type DatasetSearcher interface {
	Search(ctx context.Context, keyword string) (*kaggle.SearchResult, error)
}

// Streamer produces the generated answer as an ordered fragment stream.
type Streamer interface {
	GenerateStream(ctx context.Context, prompt string, onFragment llm.FragmentFunc) (string, error)
}

// TurnNotifier fans a session-updated signal out to the user's other
// connected clients after a durable turn. Optional.
type TurnNotifier interface {
	NotifySessionUpdated(userId, sessionId string)
}

// IConversationService is the conversation session engine: it owns the
// per-turn pipeline and the session CRUD operations.
type IConversationService interface {
	HandleTurn(ctx context.Context, request *dto.GenerateRequest, emit EmitChunk) (*dto.GenerateResult, error)
	GetSessions(ctx context.Context, request *dto.GetSessionsRequest) (*dto.SessionsResult, error)
	GetHistory(ctx context.Context, request *dto.GetHistoryRequest) (*dto.HistoryResult, error)
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionCreatedResult, error)
	DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) (*dto.SessionDeletedResult, error)
	GetRecommendation(ctx context.Context, request *dto.RecommendationRequest) (*dto.RecommendationResult, error)
}

type conversationService struct {
	historyRepo  contract.HistoryRepository
	gate         RelevanceGate
	extractor    KeywordExtractor
	searcher     DatasetSearcher
	streamer     Streamer
	datasetCache *memory.DatasetCache
	notifier     TurnNotifier
	pubSub       *gochannel.GoChannel
	turnTopic    string
	logger       logger.ILogger
	validate     *validator.Validate
	userLocks    *keyedMutex

	upstreamTimeout  time.Duration
	streamingTimeout time.Duration
}

func NewConversationService(
	historyRepo contract.HistoryRepository,
	gate RelevanceGate,
	extractor KeywordExtractor,
	searcher DatasetSearcher,
	streamer Streamer,
	datasetCache *memory.DatasetCache,
	notifier TurnNotifier,
	pubSub *gochannel.GoChannel,
	turnTopic string,
	log logger.ILogger,
	upstreamTimeout time.Duration,
	streamingTimeout time.Duration,
) IConversationService {
	return &conversationService{
		historyRepo:      historyRepo,
		gate:             gate,
		extractor:        extractor,
		searcher:         searcher,
		streamer:         streamer,
		datasetCache:     datasetCache,
		notifier:         notifier,
		pubSub:           pubSub,
		turnTopic:        turnTopic,
		logger:           log,
		validate:         validator.New(),
		userLocks:        newKeyedMutex(),
		upstreamTimeout:  upstreamTimeout,
		streamingTimeout: streamingTimeout,
	}
}

// HandleTurn runs the full per-turn pipeline. Fragments go out through emit
// in arrival order; the terminal result (or a typed error) is the return
// value, so the caller of this specific turn always receives its own
// completion.
func (cs *conversationService) HandleTurn(ctx context.Context, request *dto.GenerateRequest, emit EmitChunk) (*dto.GenerateResult, error) {
	if err := cs.validate.Struct(request); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeMissingPrompt, "Please provide prompt and user ID.")
	}

	// Relevance gate runs before any persistence. A gate failure aborts the
	// turn; an unreachable classifier is an upstream failure, never an
	// implicit "not relevant".
	gateCtx, cancel := context.WithTimeout(ctx, cs.upstreamTimeout)
	relevant, err := cs.gate.IsMLPrompt(gateCtx, request.UserPrompt)
	cancel()
	if err != nil {
		cs.logger.Error("Engine", "Relevance gate failed", map[string]interface{}{
			"user_id": request.UserId,
			"error":   err.Error(),
		})
		return nil, dto.NewEngineError(constant.ErrTypeUpstreamFailure,
			fmt.Sprintf("Relevance check failed: %v", err))
	}

	if !relevant {
		return cs.handleNotRelevant(ctx, request)
	}

	// Serialize the rest of the pipeline per user: the history row is the
	// write unit, so concurrent turns on any of the user's sessions would
	// otherwise race on the same document.
	cs.userLocks.Lock(request.UserId)
	defer cs.userLocks.Unlock(request.UserId)

	history, session, created, err := cs.resolveSession(ctx, request.UserId, request.SessionId, request.UserPrompt)
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeResponseGeneration,
			fmt.Sprintf("Response generation failed: %v", err))
	}

	extractCtx, cancel := context.WithTimeout(ctx, cs.upstreamTimeout)
	keywords, err := cs.extractor.Extract(extractCtx, request.UserPrompt)
	cancel()
	if err != nil {
		cs.logger.Error("Engine", "Keyword extraction failed", map[string]interface{}{
			"user_id": request.UserId,
			"error":   err.Error(),
		})
		return nil, dto.NewEngineError(constant.ErrTypeUpstreamFailure,
			fmt.Sprintf("Keyword extraction failed: %v", err))
	}

	// Enrichment is best-effort: a provider miss or a transport error both
	// degrade to an empty suggestion list, never a failed turn.
	datasets := cs.searchDatasets(ctx, keywords.Domain)

	finalTrainingData := request.TrainingData
	if finalTrainingData == "" && len(datasets) > 0 {
		top := datasets[0]
		finalTrainingData = prompt.DefaultTrainingData(top.Title, top.Url)
	}

	now := time.Now()
	session.Messages = append(session.Messages, entity.Message{
		Role:         constant.ChatMessageRoleUser,
		Content:      request.UserPrompt,
		TrainingData: finalTrainingData,
		Datasets:     datasets,
		Timestamp:    now,
	})

	finalPrompt := prompt.Compose(session.Messages, request.UserPrompt, finalTrainingData)

	streamCtx, cancel := context.WithTimeout(ctx, cs.streamingTimeout)
	defer cancel()

	fullResponse, err := cs.streamer.GenerateStream(streamCtx, finalPrompt, func(fragment string) error {
		if fragment == "" {
			return nil
		}
		if emit != nil {
			emit(&dto.ChunkEvent{
				SessionId:  session.SessionId,
				Chunk:      fragment,
				IsComplete: false,
			})
		}
		return nil
	})
	if err != nil {
		cs.logger.Error("Engine", "Streaming generation failed", map[string]interface{}{
			"user_id":    request.UserId,
			"session_id": session.SessionId,
			"error":      err.Error(),
		})
		return nil, dto.NewEngineError(constant.ErrTypeResponseGeneration,
			fmt.Sprintf("Response generation failed: %v", err))
	}
	if fullResponse == "" {
		return nil, dto.NewEngineError(constant.ErrTypeResponseGeneration,
			"Response generation failed: empty response from model")
	}

	formattedResponse := prompt.WrapEnvelope(fullResponse)

	session.Messages = append(session.Messages, entity.Message{
		Role:         constant.ChatMessageRoleAssistant,
		Content:      formattedResponse,
		TrainingData: finalTrainingData,
		Timestamp:    time.Now(),
	})
	session.Datasets = datasets
	session.LastActive = time.Now()

	// Single atomic save for the whole turn: the session is located by id
	// in the document and replaced wholesale. A failure anywhere above this
	// point leaves no persisted trace of the turn.
	history.ReplaceSession(*session)
	if err := cs.saveHistory(ctx, history, created); err != nil {
		cs.logger.Error("Engine", "History save failed", map[string]interface{}{
			"user_id":    request.UserId,
			"session_id": session.SessionId,
			"error":      err.Error(),
		})
		return nil, dto.NewEngineError(constant.ErrTypeResponseGeneration,
			fmt.Sprintf("Response generation failed: generated but not saved: %v", err))
	}

	cs.publishTurnCompleted(request.UserId, session.SessionId, len(request.UserPrompt), len(formattedResponse), len(datasets))
	if cs.notifier != nil {
		cs.notifier.NotifySessionUpdated(request.UserId, session.SessionId)
	}

	return &dto.GenerateResult{
		SessionId:  session.SessionId,
		Response:   formattedResponse,
		Datasets:   mapper.DescriptorsToDTO(datasets),
		IsComplete: true,
	}, nil
}

// handleNotRelevant short-circuits the pipeline with the canned notice. The
// notice is still persisted as an assistant message so the transcript
// reflects it; keyword extraction, enrichment and generation never run.
func (cs *conversationService) handleNotRelevant(ctx context.Context, request *dto.GenerateRequest) (*dto.GenerateResult, error) {
	cs.userLocks.Lock(request.UserId)
	defer cs.userLocks.Unlock(request.UserId)

	history, session, created, err := cs.resolveSession(ctx, request.UserId, request.SessionId, request.UserPrompt)
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeResponseGeneration,
			fmt.Sprintf("Response generation failed: %v", err))
	}

	session.Messages = append(session.Messages, entity.Message{
		Role:      constant.ChatMessageRoleAssistant,
		Content:   constant.NotRelevantNotice,
		Timestamp: time.Now(),
	})
	session.LastActive = time.Now()

	history.ReplaceSession(*session)
	if err := cs.saveHistory(ctx, history, created); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeResponseGeneration,
			fmt.Sprintf("Response generation failed: %v", err))
	}

	return &dto.GenerateResult{
		SessionId:  session.SessionId,
		Response:   constant.NotRelevantNotice,
		Datasets:   []dto.DatasetDTO{},
		IsComplete: true,
	}, nil
}

// resolveSession loads or lazily creates the user's history and the target
// session. Only the turn-handling path auto-creates; the CRUD operations
// require an existing history.
func (cs *conversationService) resolveSession(ctx context.Context, userId, sessionId, firstPrompt string) (*entity.History, *entity.Session, bool, error) {
	history, err := cs.historyRepo.FindOne(ctx, specification.ByOwnerID{OwnerID: userId})
	if err != nil {
		return nil, nil, false, err
	}

	created := false
	if history == nil {
		history = &entity.History{
			OwnerId:  userId,
			Sessions: []entity.Session{},
		}
		created = true
	}

	if sessionId != "" {
		if i := history.FindSession(sessionId); i >= 0 {
			return history, &history.Sessions[i], created, nil
		}
	}

	if sessionId == "" {
		sessionId = newSessionToken(history)
	}

	title := firstPrompt
	if runes := []rune(title); len(runes) > constant.SessionTitleMaxLen {
		title = string(runes[:constant.SessionTitleMaxLen])
	}
	history.Sessions = append(history.Sessions, entity.Session{
		SessionId:  sessionId,
		Title:      title + "...",
		Messages:   []entity.Message{},
		Datasets:   []entity.DatasetDescriptor{},
		LastActive: time.Now(),
	})
	return history, &history.Sessions[len(history.Sessions)-1], created, nil
}

func (cs *conversationService) saveHistory(ctx context.Context, history *entity.History, created bool) error {
	if created {
		return cs.historyRepo.Create(ctx, history)
	}
	return cs.historyRepo.Save(ctx, history)
}

// newSessionToken generates a time-based token unique within the history.
func newSessionToken(history *entity.History) string {
	token := strconv.FormatInt(time.Now().UnixMilli(), 10)
	for suffix := 0; history.FindSession(token) >= 0; suffix++ {
		token = strconv.FormatInt(time.Now().UnixMilli()+int64(suffix)+1, 10)
	}
	return token
}

// searchDatasets runs the enrichment stage: cache first, then the provider.
// The provider's own ranking order is preserved; no re-ranking happens here.
func (cs *conversationService) searchDatasets(ctx context.Context, domainKeyword string) []entity.DatasetDescriptor {
	if domainKeyword == "" {
		return []entity.DatasetDescriptor{}
	}

	if cached, found := cs.datasetCache.Get(domainKeyword); found {
		return cached
	}

	searchCtx, cancel := context.WithTimeout(ctx, cs.upstreamTimeout)
	defer cancel()

	result, err := cs.searcher.Search(searchCtx, domainKeyword)
	if err != nil {
		cs.logger.Warn("Engine", "Dataset search failed, continuing without suggestions", map[string]interface{}{
			"keyword": domainKeyword,
			"error":   err.Error(),
		})
		return []entity.DatasetDescriptor{}
	}
	if result.Status == kaggle.StatusNotFound {
		return []entity.DatasetDescriptor{}
	}

	datasets := mapper.KaggleToDescriptors(result.Datasets)
	cs.datasetCache.Save(domainKeyword, datasets)
	return datasets
}

func (cs *conversationService) publishTurnCompleted(userId, sessionId string, promptChars, responseChars, datasetCount int) {
	if cs.pubSub == nil {
		return
	}

	payload, err := json.Marshal(dto.TurnCompletedMessage{
		UserId:        userId,
		SessionId:     sessionId,
		PromptChars:   promptChars,
		ResponseChars: responseChars,
		DatasetCount:  datasetCount,
	})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := cs.pubSub.Publish(cs.turnTopic, msg); err != nil {
		cs.logger.Warn("Engine", "Failed to publish turn-completed event", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

// GetSessions lists session summaries. A user without a history gets an
// empty list, not an error.
func (cs *conversationService) GetSessions(ctx context.Context, request *dto.GetSessionsRequest) (*dto.SessionsResult, error) {
	if err := cs.validate.Struct(request); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeInvalidInput, "Please provide user ID.")
	}

	history, err := cs.historyRepo.FindOne(ctx, specification.ByOwnerID{OwnerID: request.UserId})
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionsRetrieval,
			fmt.Sprintf("Failed to get sessions: %v", err))
	}

	result := &dto.SessionsResult{Sessions: []dto.SessionSummary{}}
	if history == nil {
		return result, nil
	}

	for _, s := range history.Sessions {
		result.Sessions = append(result.Sessions, dto.SessionSummary{
			Id:           s.SessionId,
			Title:        s.Title,
			LastActive:   s.LastActive,
			MessageCount: len(s.Messages),
		})
	}
	return result, nil
}

// GetHistory returns a session's full transcript, or an isEmpty marker when
// the history or session does not exist.
func (cs *conversationService) GetHistory(ctx context.Context, request *dto.GetHistoryRequest) (*dto.HistoryResult, error) {
	if err := cs.validate.Struct(request); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeInvalidInput, "Please provide user ID and session ID.")
	}

	history, err := cs.historyRepo.FindOne(ctx, specification.ByOwnerID{OwnerID: request.UserId})
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeHistoryRetrieval,
			fmt.Sprintf("History retrieval failed: %v", err))
	}

	if history == nil {
		return &dto.HistoryResult{Messages: []dto.MessageDTO{}, IsEmpty: true}, nil
	}
	i := history.FindSession(request.SessionId)
	if i < 0 {
		return &dto.HistoryResult{Messages: []dto.MessageDTO{}, IsEmpty: true}, nil
	}

	session := history.Sessions[i]
	return &dto.HistoryResult{
		SessionId:    session.SessionId,
		Title:        session.Title,
		Messages:     mapper.MessagesToDTO(session.Messages),
		LastResponse: session.LastAssistantContent(),
		Datasets:     mapper.DescriptorsToDTO(session.Datasets),
		IsEmpty:      false,
	}, nil
}

// CreateSession appends an empty session. Requires an existing history;
// only the turn path auto-creates one.
func (cs *conversationService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionCreatedResult, error) {
	if err := cs.validate.Struct(request); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeInvalidInput, "Please provide user ID.")
	}

	cs.userLocks.Lock(request.UserId)
	defer cs.userLocks.Unlock(request.UserId)

	history, err := cs.historyRepo.FindOne(ctx, specification.ByOwnerID{OwnerID: request.UserId})
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionCreation,
			fmt.Sprintf("Session creation failed: %v", err))
	}
	if history == nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionCreation, "User history not found")
	}

	title := request.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session := entity.Session{
		SessionId:  newSessionToken(history),
		Title:      title,
		Messages:   []entity.Message{},
		Datasets:   []entity.DatasetDescriptor{},
		LastActive: time.Now(),
	}
	history.Sessions = append(history.Sessions, session)

	if err := cs.historyRepo.Save(ctx, history); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionCreation,
			fmt.Sprintf("Session creation failed: %v", err))
	}

	return &dto.SessionCreatedResult{
		SessionId: session.SessionId,
		Title:     session.Title,
	}, nil
}

// DeleteSession removes a session by id. Deleting an unknown id is a no-op
// that still reports success (tolerant delete).
func (cs *conversationService) DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) (*dto.SessionDeletedResult, error) {
	if err := cs.validate.Struct(request); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeInvalidInput, "Please provide user ID and session ID.")
	}

	cs.userLocks.Lock(request.UserId)
	defer cs.userLocks.Unlock(request.UserId)

	history, err := cs.historyRepo.FindOne(ctx, specification.ByOwnerID{OwnerID: request.UserId})
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionDeletion,
			fmt.Sprintf("Session deletion failed: %v", err))
	}
	if history == nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionDeletion, "User history not found")
	}

	history.RemoveSession(request.SessionId)

	if err := cs.historyRepo.Save(ctx, history); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeSessionDeletion,
			fmt.Sprintf("Session deletion failed: %v", err))
	}

	return &dto.SessionDeletedResult{SessionId: request.SessionId}, nil
}

// GetRecommendation runs keyword extraction plus dataset search without
// touching any session state. Used by the REST fallback surface.
func (cs *conversationService) GetRecommendation(ctx context.Context, request *dto.RecommendationRequest) (*dto.RecommendationResult, error) {
	if err := cs.validate.Struct(request); err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeMissingPrompt, "Please provide prompt and user ID.")
	}

	extractCtx, cancel := context.WithTimeout(ctx, cs.upstreamTimeout)
	keywords, err := cs.extractor.Extract(extractCtx, request.UserPrompt)
	cancel()
	if err != nil {
		return nil, dto.NewEngineError(constant.ErrTypeUpstreamFailure,
			fmt.Sprintf("Keyword extraction failed: %v", err))
	}

	datasets := cs.searchDatasets(ctx, keywords.Domain)

	return &dto.RecommendationResult{
		Keyword:  keywords.Domain,
		TaskType: keywords.TaskType,
		Datasets: mapper.DescriptorsToDTO(datasets),
	}, nil
}
