package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gosimple/slug"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	mediumChallengeLevel = 2
	hardChallengeLevel   = 5

	maxChallengeTitle       = 80
	maxChallengeDescription = 240
)

const challengePrompt = `You write short, motivating daily challenges for content creators.
Rewrite the challenge below for this creator. Keep the same task and the same amount of work.
Creator platforms: %s
Creator niche: %s
Challenge title: %s
Challenge description: %s
Reply with JSON only: {"title": "...", "description": "..."}`

type ChallengeService struct {
	appContext.DefaultService

	dbSvc        *DatabaseService
	xpSvc        *XPService
	rateLimitSvc *RateLimitService
	generator    TextGenerator
	notifier     Notifier
	clock        shared.Clock

	repeatWindowDays int
	temperature      float32

	// pick chooses an index in [0, n).
	pick func(n int) int
}

const CHALLENGE_SVC = "challenge_svc"

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Configure(ctx *appContext.Context) error {
	svc.pick = rand.IntN
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChallengeService) Start() error {
	settingsSvc := svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.xpSvc = svc.Service(XP_SVC).(*XPService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.generator = svc.Service(GENAI_SVC).(*GenAIService)
	svc.notifier = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.clock = settingsSvc.Clock()
	svc.repeatWindowDays = settingsSvc.Settings().Challenges.RepeatWindowDays
	svc.temperature = settingsSvc.Settings().Challenges.Temperature
	return nil
}

// GenerateDailyChallenges returns today's challenges, creating them on the
// first call of the local day.
func (svc *ChallengeService) GenerateDailyChallenges(ctx context.Context, userID string) ([]dto.ChallengeResponse, error) {
	now := svc.clock.Now()
	repo := svc.dbSvc.Challenges()

	existing, err := repo.ListCreatedSince(userID, shared.StartOfDay(now))
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	if len(existing) > 0 {
		return challengeResponses(existing), nil
	}

	stats, err := svc.dbSvc.Users().GetStats(userID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	level := catalog.LevelFor(stats.TotalXP).Number

	difficulties := []catalog.Difficulty{catalog.DifficultyEasy}
	if level >= mediumChallengeLevel {
		difficulties = append(difficulties, catalog.DifficultyMedium)
	}
	if level >= hardChallengeLevel {
		difficulties = append(difficulties, catalog.DifficultyHard)
	}

	recent, err := repo.RecentTemplateIDs(userID, now.AddDate(0, 0, -svc.repeatWindowDays))
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	user, err := svc.dbSvc.Users().GetUser(userID)
	if err != nil {
		user = nil
	}

	expires := shared.NextMidnight(now)
	rows := make([]model.DailyChallenge, 0, len(difficulties))
	for _, d := range difficulties {
		tmpl, ok := svc.selectTemplate(d, recent)
		if !ok {
			continue
		}
		title, description := svc.personalize(ctx, userID, tmpl, user)
		rows = append(rows, model.DailyChallenge{
			UserID:       userID,
			ChallengeID:  tmpl.ID,
			Title:        title,
			Description:  description,
			Type:         string(tmpl.Type),
			Category:     string(tmpl.Category),
			Difficulty:   string(d),
			Requirements: datatypes.NewJSONType(tmpl.Requirements),
			Rewards:      datatypes.NewJSONType(tmpl.Rewards),
			Status:       model.ChallengeStatusActive,
			ExpiresAt:    expires,
			CreatedAt:    now,
		})
	}

	if err := repo.CreateChallenges(rows); err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": userID, "count": len(rows), "level": level}).Info("Daily challenges generated")
	return challengeResponses(rows), nil
}

// selectTemplate skips templates used inside the repeat window unless that
// would leave nothing to pick.
func (svc *ChallengeService) selectTemplate(d catalog.Difficulty, recent map[string]bool) (catalog.ChallengeTemplate, bool) {
	pool := catalog.ChallengePool(d)
	if len(pool) == 0 {
		return catalog.ChallengeTemplate{}, false
	}

	var fresh []catalog.ChallengeTemplate
	for _, t := range pool {
		if !recent[t.ID] {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}
	return fresh[svc.pick(len(fresh))], true
}

// personalize rewrites title and description only. Any failure keeps the
// template text.
func (svc *ChallengeService) personalize(ctx context.Context, userID string, tmpl catalog.ChallengeTemplate, user *model.User) (string, string) {
	if user == nil || svc.generator == nil {
		return tmpl.Title, tmpl.Description
	}
	if svc.rateLimitSvc != nil {
		if err := svc.rateLimitSvc.Check(BucketGeneration, userID); err != nil {
			return tmpl.Title, tmpl.Description
		}
	}

	platforms := strings.Join(user.Platforms.Data(), ", ")
	if platforms == "" {
		platforms = "not specified"
	}
	niche := user.ContentNiche
	if niche == "" {
		niche = "not specified"
	}

	prompt := fmt.Sprintf(challengePrompt, platforms, niche, tmpl.Title, tmpl.Description)
	text, err := svc.generator.Complete(ctx, "", []ChatMessage{{Role: shared.RoleUser, Content: prompt}}, GenerateOptions{
		Temperature: svc.temperature,
		MaxTokens:   256,
		JSON:        true,
	})
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "challenge_id": tmpl.ID, "error": err}).Warn("Challenge personalization failed")
		return tmpl.Title, tmpl.Description
	}

	var out struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := shared.Unmarshal([]byte(stripCodeFence(text)), &out); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "challenge_id": tmpl.ID, "error": err}).Warn("Unparseable challenge personalization")
		return tmpl.Title, tmpl.Description
	}

	title := truncate(strings.TrimSpace(out.Title), maxChallengeTitle)
	description := truncate(strings.TrimSpace(out.Description), maxChallengeDescription)
	if title == "" {
		title = tmpl.Title
	}
	if description == "" {
		description = tmpl.Description
	}
	return title, description
}

// UpdateChallengeProgress recomputes every active challenge from source data.
// The action that triggered the call only matters for logging. It returns
// the challenges completed by this call.
func (svc *ChallengeService) UpdateChallengeProgress(ctx context.Context, userID, actionType string, increment int) ([]dto.ChallengeResponse, error) {
	now := svc.clock.Now()
	repo := svc.dbSvc.Challenges()

	active, err := repo.ListActive(userID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	if len(active) == 0 {
		return nil, nil
	}

	stats, err := svc.dbSvc.Users().GetStats(userID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	var completed []dto.ChallengeResponse
	for _, c := range active {
		progress, done, err := svc.evaluate(userID, &c, stats)
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ID, "error": err}).Warn("Failed to evaluate challenge")
			continue
		}

		if !done {
			if progress > c.Progress {
				if err := repo.RaiseProgress(c.ID, progress); err != nil {
					log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ID, "error": err}).Warn("Failed to save challenge progress")
				}
			}
			continue
		}

		changed, err := repo.MarkCompleted(c.ID, now)
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ID, "error": err}).Error("Failed to complete challenge")
			continue
		}
		if !changed {
			continue
		}

		c.Status = model.ChallengeStatusCompleted
		c.Progress = 100
		c.CompletedAt = &now
		log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ChallengeID, "action": actionType, "increment": increment}).Info("Challenge completed")

		if _, err := svc.xpSvc.AwardXP(ctx, userID, catalog.ActionCompleteChallenge, map[string]interface{}{"challenge_id": c.ChallengeID}); err != nil {
			log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ID, "error": err}).Warn("Failed to award challenge XP")
		}
		svc.notifier.Notify(ctx, userID, shared.NotificationChallenge,
			"Challenge complete: "+c.Title,
			c.Description,
			map[string]interface{}{"challenge_id": c.ID})

		if _, err := svc.ClaimChallengeRewards(ctx, userID, c.ID); err != nil {
			log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ID, "error": err}).Warn("Failed to claim challenge rewards")
		} else {
			claimed := now
			c.ClaimedAt = &claimed
		}
		completed = append(completed, challengeResponse(c))
	}

	return completed, nil
}

// evaluate returns the progress percentage and whether every requirement
// has met its target.
func (svc *ChallengeService) evaluate(userID string, c *model.DailyChallenge, stats *model.UserStats) (int, bool, error) {
	reqs := c.Requirements.Data()
	if len(reqs) == 0 {
		return 0, false, nil
	}

	done := true
	total := 0.0
	for _, req := range reqs {
		count, err := svc.requirementCount(userID, req, c.CreatedAt, stats)
		if err != nil {
			return 0, false, err
		}
		if req.Count <= 0 || count >= int64(req.Count) {
			total += 1
			continue
		}
		done = false
		total += float64(count) / float64(req.Count)
	}
	return int(total * 100 / float64(len(reqs))), done, nil
}

func (svc *ChallengeService) requirementCount(userID string, req catalog.ChallengeRequirement, since time.Time, stats *model.UserStats) (int64, error) {
	switch req.Type {
	case catalog.ChallengeReqTask:
		return svc.dbSvc.Activity().CountCompletedTasksSince(userID, since)
	case catalog.ChallengeReqAction:
		return svc.dbSvc.XP().CountActionSince(userID, req.Target, since)
	case catalog.ChallengeReqMetric:
		return statsMetric(stats, req.Target), nil
	case catalog.ChallengeReqTime:
		times, err := svc.dbSvc.XP().TimesSince(userID, catalog.UserActionIDs(), since)
		if err != nil {
			return 0, err
		}
		var n int64
		for _, t := range times {
			if catalog.TimeWindowContains(req.Target, t.In(svc.clock.Location()).Hour()) {
				n++
			}
		}
		return n, nil
	}
	return 0, fmt.Errorf("unknown challenge requirement %q", req.Type)
}

func statsMetric(stats *model.UserStats, metric string) int64 {
	switch metric {
	case catalog.MetricStreakDays:
		return int64(stats.StreakDays)
	case catalog.MetricTotalXP:
		return stats.TotalXP
	case catalog.MetricLevel:
		return int64(catalog.LevelFor(stats.TotalXP).Number)
	}
	return 0
}

// ClaimChallengeRewards pays a completed challenge once. The conditional
// update on claimed_at decides which caller pays.
func (svc *ChallengeService) ClaimChallengeRewards(ctx context.Context, userID, challengeID string) (*dto.ClaimResult, error) {
	repo := svc.dbSvc.Challenges()
	c, err := repo.GetChallenge(userID, challengeID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	result := &dto.ClaimResult{ChallengeID: c.ID}
	if c.Status != model.ChallengeStatusCompleted {
		return nil, shared.NewBadRequestError(nil, "Challenge is not completed")
	}
	if c.ClaimedAt != nil {
		return result, nil
	}

	now := svc.clock.Now()
	claimed, err := repo.MarkClaimed(c.ID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	if !claimed {
		return result, nil
	}

	source := "challenge:" + c.ChallengeID
	for _, g := range c.Rewards.Data() {
		var err error
		switch g.Kind {
		case catalog.GrantXP:
			_, err = svc.xpSvc.GrantXP(ctx, userID, source, g.Amount, catalog.Category(c.Category))
		case catalog.GrantBadge:
			_, err = svc.dbSvc.Badges().CreateUserAchievement(&model.UserAchievement{
				UserID:        userID,
				AchievementID: "challenge-" + slug.Make(g.Ref),
				Kind:          model.AchievementKindChallenge,
				EarnedAt:      now,
			})
		case catalog.GrantFeature:
			_, err = svc.dbSvc.Rewards().CreateFeature(&model.UnlockedFeature{UserID: userID, Feature: g.Ref, Source: source, CreatedAt: now})
		default:
			log.WithFields(log.Fields{"user_id": userID, "grant": g.Kind}).Warn("Unsupported challenge reward")
			continue
		}
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "challenge_id": c.ID, "grant": g.Kind, "error": err}).Error("Failed to grant challenge reward")
			continue
		}
		result.Rewards = append(result.Rewards, dto.GrantResponse{Type: string(g.Kind), Amount: g.Amount, Ref: g.Ref})
	}

	result.Claimed = true
	awardsTotal.WithLabelValues("challenge").Inc()
	return result, nil
}

func (svc *ChallengeService) AbandonChallenge(ctx context.Context, userID, challengeID string) error {
	changed, err := svc.dbSvc.Challenges().Abandon(userID, challengeID)
	if err != nil {
		return svc.dbSvc.HandleError(err)
	}
	if changed {
		return nil
	}
	if _, err := svc.dbSvc.Challenges().GetChallenge(userID, challengeID); err != nil {
		return svc.dbSvc.HandleError(err)
	}
	return shared.NewConflictError(nil, "Only active challenges can be abandoned")
}

// ExpireChallenges marks every active challenge past its expiry as expired.
func (svc *ChallengeService) ExpireChallenges(ctx context.Context) (int64, error) {
	n, err := svc.dbSvc.Challenges().ExpireBefore(svc.clock.Now())
	if err != nil {
		return 0, svc.dbSvc.HandleError(err)
	}
	if n > 0 {
		log.WithField("count", n).Info("Expired challenges")
	}
	return n, nil
}

func challengeResponses(rows []model.DailyChallenge) []dto.ChallengeResponse {
	out := make([]dto.ChallengeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, challengeResponse(r))
	}
	return out
}

func challengeResponse(c model.DailyChallenge) dto.ChallengeResponse {
	reqs := c.Requirements.Data()
	grants := c.Rewards.Data()

	resp := dto.ChallengeResponse{
		ID:           c.ID,
		ChallengeID:  c.ChallengeID,
		Title:        c.Title,
		Description:  c.Description,
		Type:         c.Type,
		Category:     c.Category,
		Difficulty:   c.Difficulty,
		Requirements: make([]dto.ChallengeRequirementResponse, 0, len(reqs)),
		Rewards:      make([]dto.GrantResponse, 0, len(grants)),
		Status:       c.Status,
		Progress:     c.Progress,
		ExpiresAt:    c.ExpiresAt,
		CompletedAt:  c.CompletedAt,
		ClaimedAt:    c.ClaimedAt,
	}
	for _, r := range reqs {
		resp.Requirements = append(resp.Requirements, dto.ChallengeRequirementResponse{Type: string(r.Type), Target: r.Target, Count: r.Count})
	}
	for _, g := range grants {
		resp.Rewards = append(resp.Rewards, dto.GrantResponse{Type: string(g.Kind), Amount: g.Amount, Ref: g.Ref})
	}
	return resp
}

// stripCodeFence removes a markdown code fence some models wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
