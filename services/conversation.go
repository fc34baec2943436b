package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/onboarding"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// StreamErrorMarker is sent to the caller when generation fails mid-stream.
const StreamErrorMarker = "\n\n[response interrupted, please try again]"

const (
	FlagPartial = "partial"
	flagReask   = "reasked:"

	defaultConversationList = 20
)

const assistantPersona = `You are a practical growth coach for content creators. Give specific, actionable advice
in short paragraphs or lists. If you do not know something, say so.`

type ConversationService struct {
	appContext.DefaultService

	dbSvc        *DatabaseService
	userSvc      *UserService
	activitySvc  *ActivityService
	rateLimitSvc *RateLimitService
	knowledgeSvc *KnowledgeService
	archiveSvc   *ArchiveService
	generator    TextGenerator
	cache        ConversationCache
	clock        shared.Clock

	historyWindow int
	temperature   float32
	maxTokens     int32

	locks sync.Map

	// handoff runs onboarding completion work off the request path.
	handoff func(fn func())
}

const CONVERSATION_SVC = "conversation_svc"

func (svc ConversationService) Id() string {
	return CONVERSATION_SVC
}

func (svc *ConversationService) Configure(ctx *appContext.Context) error {
	svc.handoff = func(fn func()) { go fn() }
	return svc.DefaultService.Configure(ctx)
}

func (svc *ConversationService) Start() error {
	settingsSvc := svc.Service(SETTINGS_SVC).(*SettingsService)
	settings := settingsSvc.Settings()

	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.activitySvc = svc.Service(ACTIVITY_SVC).(*ActivityService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.knowledgeSvc = svc.Service(KNOWLEDGE_SVC).(*KnowledgeService)
	svc.archiveSvc = svc.Service(ARCHIVE_SVC).(*ArchiveService)
	svc.generator = svc.Service(GENAI_SVC).(*GenAIService)
	svc.clock = settingsSvc.Clock()

	svc.historyWindow = settings.Conversation.HistoryWindow
	svc.temperature = settings.Conversation.Temperature
	svc.maxTokens = settings.Conversation.MaxTokens

	redisSvc := svc.Service(REDIS_SVC).(*RedisService)
	if redisSvc.Enabled() && strings.EqualFold(envOr("CONVERSATION_CACHE", "lru"), "redis") {
		svc.cache = NewRedisConversationCache(redisSvc, settings.ConversationCacheTTL())
		log.Info("Conversation cache: redis")
		return nil
	}

	cache, err := NewLRUConversationCache(settings.Conversation.CacheSize, settings.ConversationCacheTTL(), svc.clock)
	if err != nil {
		return fmt.Errorf("failed to create conversation cache: %w", err)
	}
	svc.cache = cache
	log.WithField("size", settings.Conversation.CacheSize).Info("Conversation cache: lru")
	return nil
}

// ProcessMessage runs one chat turn. Each text fragment is passed to onChunk
// as it arrives; onChunk may be nil. If generation fails part way, the text
// received so far is saved as a partial assistant message and onChunk
// receives StreamErrorMarker before the error is returned.
func (svc *ConversationService) ProcessMessage(ctx context.Context, req dto.ProcessMessageRequest, onChunk func(string)) (*dto.ConversationTurn, error) {
	if onChunk == nil {
		onChunk = func(string) {}
	}

	conv, unlock, err := svc.acquire(ctx, req)
	if err != nil {
		return nil, err
	}
	defer unlock()

	limitKey := conv.UserID
	if conv.Anonymous() {
		limitKey = "anon:" + conv.ID
	}
	if err := svc.rateLimitSvc.Check(BucketChat, limitKey); err != nil {
		return nil, err
	}

	now := svc.clock.Now()
	messages := conv.Messages.Data()
	messages = append(messages, model.ConversationMessage{Role: shared.RoleUser, Content: req.Message, Timestamp: now})

	// The onboarding transition runs first so the prompt reflects the new step.
	var system string
	var state onboarding.Context
	isOnboarding := onboarding.IsOnboarding(conv.Context)
	completed := false
	if isOnboarding {
		state, completed = onboarding.Apply(onboarding.FromMap(conv.Context), req.Message)
		conv.Context = state.Merge(conv.Context)
		system = onboarding.BuildSystemPrompt(state)
	} else {
		system = svc.assistantPrompt(ctx, conv.UserID, req.Message)
	}

	history := svc.window(messages)
	var reply strings.Builder
	var streamErr error
	for chunk, err := range svc.generator.Stream(ctx, system, history, GenerateOptions{Temperature: svc.temperature, MaxTokens: svc.maxTokens}) {
		if err != nil {
			streamErr = err
			break
		}
		if chunk.Text != "" {
			reply.WriteString(chunk.Text)
			onChunk(chunk.Text)
		}
		if chunk.Done {
			break
		}
	}

	if streamErr != nil {
		if reply.Len() > 0 {
			messages = append(messages, model.ConversationMessage{
				Role:      shared.RoleAssistant,
				Content:   reply.String(),
				Timestamp: svc.clock.Now(),
				Partial:   true,
				Flags:     []string{FlagPartial},
			})
		}
		conv.Messages = datatypes.NewJSONType(messages)
		svc.save(context.WithoutCancel(ctx), conv)
		onChunk(StreamErrorMarker)

		log.WithFields(log.Fields{"conversation_id": conv.ID, "received": reply.Len(), "error": streamErr}).Warn("Generation stream failed")
		if errors.Is(streamErr, context.Canceled) || errors.Is(streamErr, context.DeadlineExceeded) {
			return nil, streamErr
		}
		return nil, shared.NewUpstreamError(streamErr, "Text generation failed")
	}

	var flags []string
	if isOnboarding {
		if step, repeated := onboarding.RepeatsAnsweredQuestion(state, reply.String()); repeated {
			flags = append(flags, flagReask+string(step))
			onboardingReaskTotal.WithLabelValues(string(step)).Inc()
			log.WithFields(log.Fields{"conversation_id": conv.ID, "step": step}).Warn("Assistant asked an answered onboarding question")
		}
	}

	messages = append(messages, model.ConversationMessage{
		Role:      shared.RoleAssistant,
		Content:   reply.String(),
		Timestamp: svc.clock.Now(),
		Flags:     flags,
	})
	conv.Messages = datatypes.NewJSONType(messages)
	svc.save(ctx, conv)

	if completed && !conv.Anonymous() {
		svc.completeOnboarding(conv.UserID, conv.ID, state)
	}
	if !isOnboarding && !conv.Anonymous() {
		if _, err := svc.activitySvc.RecordEngagement(ctx, conv.UserID, model.EngagementAIInteraction); err != nil {
			log.WithFields(log.Fields{"user_id": conv.UserID, "error": err}).Warn("Failed to record assistant interaction")
		}
	}

	turn := &dto.ConversationTurn{
		ConversationID: conv.ID,
		Reply:          reply.String(),
		Context:        conv.Context,
		Completed:      completed,
		Flags:          flags,
	}
	if isOnboarding {
		turn.Step = string(state.Step)
	}
	return turn, nil
}

// acquire returns the conversation with its lock held. An existing
// conversation is locked before it is read so concurrent turns apply in order.
func (svc *ConversationService) acquire(ctx context.Context, req dto.ProcessMessageRequest) (*model.AIConversation, func(), error) {
	if req.ConversationID != "" {
		unlock := svc.lock(req.ConversationID)
		conv, err := svc.load(ctx, req.UserID, req.ConversationID)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		return conv, unlock, nil
	}

	conv, err := svc.create(req)
	if err != nil {
		return nil, nil, err
	}
	return conv, svc.lock(conv.ID), nil
}

func (svc *ConversationService) create(req dto.ProcessMessageRequest) (*model.AIConversation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create conversation")
	}

	initial := req.InitialContext
	if initial == nil {
		initial = map[string]interface{}{}
	}
	if onboarding.IsOnboarding(initial) {
		initial = onboarding.FromMap(initial).Merge(initial)
	}

	now := svc.clock.Now()
	conv := &model.AIConversation{
		ID:        id.String(),
		UserID:    req.UserID,
		Messages:  datatypes.NewJSONType([]model.ConversationMessage{}),
		Context:   datatypes.JSONMap(initial),
		CreatedAt: now,
		UpdatedAt: now,
	}
	log.WithFields(log.Fields{"conversation_id": conv.ID, "user_id": req.UserID, "onboarding": onboarding.IsOnboarding(initial)}).Info("Conversation created")
	return conv, nil
}

// load checks the cache, then the store. A conversation is only visible to
// the user it belongs to; anonymous ones only to anonymous callers.
func (svc *ConversationService) load(ctx context.Context, userID, id string) (*model.AIConversation, error) {
	conv, ok := svc.cache.Get(ctx, id)
	if !ok {
		stored, err := svc.dbSvc.Conversations().GetConversation(id)
		if err != nil {
			appErr := svc.dbSvc.HandleError(err)
			if shared.IsNotFound(appErr) {
				return nil, shared.NewNotFoundError(shared.ErrConversationNotFound, "Conversation not found")
			}
			return nil, appErr
		}
		conv = stored
		svc.cache.Set(ctx, conv)
	}

	if conv.UserID != userID {
		return nil, shared.NewNotFoundError(shared.ErrConversationNotFound, "Conversation not found")
	}
	return conv, nil
}

// save writes to the cache, and to the store unless the conversation is
// anonymous. Store failures are logged; the cached copy stays current.
func (svc *ConversationService) save(ctx context.Context, conv *model.AIConversation) {
	conv.UpdatedAt = svc.clock.Now()
	svc.cache.Set(ctx, conv)
	if conv.Anonymous() {
		return
	}
	if err := svc.dbSvc.Conversations().SaveConversation(conv); err != nil {
		conversationSaveFailuresTotal.Inc()
		log.WithFields(log.Fields{"conversation_id": conv.ID, "user_id": conv.UserID, "error": err}).Error("Failed to persist conversation")
	}
}

func (svc *ConversationService) lock(id string) func() {
	v, _ := svc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// window returns the most recent messages, skipping partial replies.
func (svc *ConversationService) window(messages []model.ConversationMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Partial {
			continue
		}
		out = append(out, ChatMessage{Role: m.Role, Content: m.Content})
	}
	if svc.historyWindow > 0 && len(out) > svc.historyWindow {
		out = out[len(out)-svc.historyWindow:]
	}
	return out
}

func (svc *ConversationService) assistantPrompt(ctx context.Context, userID, message string) string {
	var b strings.Builder
	b.WriteString(assistantPersona)

	if userID != "" {
		if user, err := svc.dbSvc.Users().GetUser(userID); err == nil {
			b.WriteString("\n\nAbout this creator:\n")
			if user.CreatorLevel != "" {
				fmt.Fprintf(&b, "- Experience: %s\n", user.CreatorLevel)
			}
			if platforms := user.Platforms.Data(); len(platforms) > 0 {
				fmt.Fprintf(&b, "- Platforms: %s\n", strings.Join(platforms, ", "))
			}
			if user.ContentNiche != "" {
				fmt.Fprintf(&b, "- Niche: %s\n", user.ContentNiche)
			}
			if user.Goals != "" {
				fmt.Fprintf(&b, "- Goals: %s\n", user.Goals)
			}
			if user.Challenges != "" {
				fmt.Fprintf(&b, "- Struggles with: %s\n", user.Challenges)
			}
		}
		if stats, err := svc.dbSvc.Users().GetStats(userID, svc.clock.Now()); err == nil {
			level := catalog.LevelFor(stats.TotalXP)
			fmt.Fprintf(&b, "- Level %d (%s), %d day streak\n", level.Number, level.Title, stats.StreakDays)
		}
	}

	if svc.knowledgeSvc != nil {
		if guide := svc.knowledgeSvc.ContextFor(ctx, userID, message); guide != "" {
			b.WriteString("\nRelevant guides:\n")
			b.WriteString(guide)
		}
	}
	return b.String()
}

func (svc *ConversationService) completeOnboarding(userID, conversationID string, state onboarding.Context) {
	profile := profileFromResponses(state.Responses)
	svc.handoff(func() {
		ctx := context.Background()
		if err := svc.userSvc.SaveOnboardingProfile(ctx, userID, profile); err != nil {
			log.WithFields(log.Fields{"user_id": userID, "conversation_id": conversationID, "error": err}).Error("Failed to save onboarding profile")
		}
	})
}

func profileFromResponses(r onboarding.Responses) dto.OnboardingProfile {
	return dto.OnboardingProfile{
		CreatorLevel:  r.String(onboarding.KeyCreatorLevel),
		Platforms:     r.Strings(onboarding.KeyPreferredPlatforms),
		PlatformNotes: r.String(onboarding.KeyPlatformNotes),
		ContentNiche:  r.String(onboarding.KeyContentNiche),
		Equipment:     r.String(onboarding.KeyEquipment),
		Goals:         r.String(onboarding.KeyGoals),
		Challenges:    r.String(onboarding.KeyChallenges),
	}
}

func (svc *ConversationService) GetConversation(ctx context.Context, userID, id string) (*dto.ConversationResponse, error) {
	unlock := svc.lock(id)
	defer unlock()

	conv, err := svc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := conversationResponse(conv)
	return &resp, nil
}

func (svc *ConversationService) ListConversations(ctx context.Context, userID string, limit int) ([]dto.ConversationSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultConversationList
	}
	rows, err := svc.dbSvc.Conversations().ListByUser(userID, limit)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	out := make([]dto.ConversationSummary, 0, len(rows))
	for _, c := range rows {
		messages := c.Messages.Data()
		summary := dto.ConversationSummary{
			ID:           c.ID,
			Type:         shared.ConversationTypeAssistant,
			MessageCount: len(messages),
			UpdatedAt:    c.UpdatedAt,
		}
		if onboarding.IsOnboarding(c.Context) {
			summary.Type = shared.ConversationTypeOnboarding
		}
		if len(messages) > 0 {
			summary.LastMessage = truncate(messages[len(messages)-1].Content, 120)
		}
		out = append(out, summary)
	}
	return out, nil
}

func (svc *ConversationService) DeleteConversation(ctx context.Context, userID, id string) error {
	deleted, err := svc.dbSvc.Conversations().DeleteConversation(userID, id)
	if err != nil {
		return svc.dbSvc.HandleError(err)
	}
	if !deleted {
		return shared.NewNotFoundError(shared.ErrConversationNotFound, "Conversation not found")
	}
	svc.cache.Delete(ctx, id)
	svc.locks.Delete(id)
	return nil
}

// AttachConversation moves an anonymous conversation onto a new account. A
// finished onboarding interview is handed off as if it had just completed.
func (svc *ConversationService) AttachConversation(ctx context.Context, userID, id string) (*dto.ConversationResponse, error) {
	unlock := svc.lock(id)
	defer unlock()

	conv, ok := svc.cache.Get(ctx, id)
	if !ok {
		return nil, shared.NewNotFoundError(shared.ErrConversationNotFound, "Conversation not found")
	}

	switch conv.UserID {
	case userID:
		resp := conversationResponse(conv)
		return &resp, nil
	case "":
	default:
		return nil, shared.NewNotFoundError(shared.ErrConversationNotFound, "Conversation not found")
	}

	conv.UserID = userID
	svc.save(ctx, conv)
	log.WithFields(log.Fields{"conversation_id": conv.ID, "user_id": userID}).Info("Conversation attached")

	if onboarding.IsOnboarding(conv.Context) {
		state := onboarding.FromMap(conv.Context)
		if state.Step == onboarding.StepComplete {
			svc.completeOnboarding(userID, conv.ID, state)
		}
	}

	resp := conversationResponse(conv)
	return &resp, nil
}

func (svc *ConversationService) ExportConversation(ctx context.Context, userID, id string) (*dto.ExportResponse, error) {
	unlock := svc.lock(id)
	conv, err := svc.load(ctx, userID, id)
	if err != nil {
		unlock()
		return nil, err
	}
	resp := conversationResponse(conv)
	unlock()
	return svc.archiveSvc.ExportConversation(ctx, resp)
}

func conversationResponse(c *model.AIConversation) dto.ConversationResponse {
	messages := c.Messages.Data()
	resp := dto.ConversationResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
		Context:   c.Context,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.MessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Partial:   m.Partial,
			Flags:     m.Flags,
		})
	}
	return resp
}
