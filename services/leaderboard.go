package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/services/repositories"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engagement blends three event kinds; help and shares count for more than
// assistant use.
var engagementWeights = map[string]float64{
	model.EngagementAIInteraction: 1,
	model.EngagementHelp:          3,
	model.EngagementShare:         2,
}

var (
	leaderboardTypes      = []string{dto.LeaderboardXP, dto.LeaderboardBadges, dto.LeaderboardAchievements, dto.LeaderboardContent, dto.LeaderboardEngagement}
	leaderboardTimeframes = []string{dto.TimeframeDaily, dto.TimeframeWeekly, dto.TimeframeMonthly, dto.TimeframeAllTime}
)

type LeaderboardService struct {
	appContext.DefaultService

	dbSvc *DatabaseService
	clock shared.Clock

	defaultLimit int
	maxLimit     int
}

const LEADERBOARD_SVC = "leaderboard_svc"

func (svc LeaderboardService) Id() string {
	return LEADERBOARD_SVC
}

func (svc *LeaderboardService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *LeaderboardService) Start() error {
	settingsSvc := svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.clock = settingsSvc.Clock()
	svc.defaultLimit = settingsSvc.Settings().Leaderboard.DefaultLimit
	svc.maxLimit = settingsSvc.Settings().Leaderboard.MaxLimit
	return nil
}

// GetLeaderboard ranks users by descending score. Equal scores go to whoever
// reached them first, then by user id.
func (svc *LeaderboardService) GetLeaderboard(ctx context.Context, boardType, timeframe string, limit int, userID string) (*dto.Leaderboard, error) {
	if boardType == "" {
		boardType = dto.LeaderboardXP
	}
	if timeframe == "" {
		timeframe = dto.TimeframeAllTime
	}
	if limit <= 0 {
		limit = svc.defaultLimit
	}
	if limit > svc.maxLimit {
		limit = svc.maxLimit
	}

	now := svc.clock.Now()
	rows, err := svc.ranked(ctx, boardType, timeframe, now)
	if err != nil {
		return nil, err
	}

	board := &dto.Leaderboard{
		Type:      boardType,
		Timeframe: timeframe,
		Entries:   []dto.LeaderboardEntry{},
		Total:     len(rows),
	}

	top := rows[:min(limit, len(rows))]
	ids := make([]string, 0, len(top)+1)
	for _, r := range top {
		ids = append(ids, r.UserID)
	}

	userRank := -1
	if userID != "" {
		userRank = slices.IndexFunc(rows, func(r repositories.ScoreRow) bool { return r.UserID == userID })
		if userRank >= limit {
			ids = append(ids, userID)
		}
	}

	users, err := svc.dbSvc.Users().GetUsersByIDs(ids)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	stats, err := svc.dbSvc.Users().GetStatsByIDs(ids)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	previous, err := svc.dbSvc.Leaderboards().PreviousRanks(boardKey(boardType, timeframe), periodKey(timeframe, now))
	if err != nil {
		// Rank change is best effort.
		log.WithFields(log.Fields{"board": boardType, "timeframe": timeframe, "error": err}).Warn("Failed to load previous ranks")
		previous = map[string]int{}
	}

	entry := func(rank int, r repositories.ScoreRow) dto.LeaderboardEntry {
		e := dto.LeaderboardEntry{
			Rank:          rank,
			UserID:        r.UserID,
			DisplayName:   users[r.UserID].DisplayName,
			Score:         r.Score,
			Level:         catalog.LevelFor(stats[r.UserID].TotalXP).Number,
			IsCurrentUser: r.UserID == userID,
		}
		count := int64(r.Score)
		switch boardType {
		case dto.LeaderboardBadges:
			e.BadgeCount = &count
		case dto.LeaderboardAchievements:
			e.AchievementCount = &count
		}
		if prev, ok := previous[r.UserID]; ok {
			change := prev - rank
			e.RankChange = &change
		}
		return e
	}

	for i, r := range top {
		board.Entries = append(board.Entries, entry(i+1, r))
	}
	if userRank >= limit {
		e := entry(userRank+1, rows[userRank])
		board.CurrentUser = &e
	}

	return board, nil
}

// SnapshotLeaderboards stores the current ranks of every board so the next
// period can report rank change.
func (svc *LeaderboardService) SnapshotLeaderboards(ctx context.Context) error {
	now := svc.clock.Now()
	for _, boardType := range leaderboardTypes {
		for _, timeframe := range leaderboardTimeframes {
			rows, err := svc.ranked(ctx, boardType, timeframe, now)
			if err != nil {
				return err
			}

			key, period := boardKey(boardType, timeframe), periodKey(timeframe, now)
			snapshot := make([]model.LeaderboardSnapshot, 0, len(rows))
			for i, r := range rows {
				snapshot = append(snapshot, model.LeaderboardSnapshot{
					Board:     key,
					PeriodKey: period,
					UserID:    r.UserID,
					Rank:      i + 1,
					Score:     r.Score,
					CreatedAt: now,
				})
			}
			if err := svc.dbSvc.Leaderboards().SaveSnapshot(snapshot); err != nil {
				return svc.dbSvc.HandleError(err)
			}
		}
	}
	log.Debug("Leaderboard snapshots saved")
	return nil
}

func (svc *LeaderboardService) ranked(ctx context.Context, boardType, timeframe string, now time.Time) ([]repositories.ScoreRow, error) {
	since, err := windowStart(timeframe, now)
	if err != nil {
		return nil, err
	}

	analytics := svc.dbSvc.Analytics()
	var rows []repositories.ScoreRow
	switch boardType {
	case dto.LeaderboardXP:
		if timeframe == dto.TimeframeAllTime {
			rows, err = analytics.TotalXPScores()
		} else {
			rows, err = analytics.XPScoresSince(since)
		}
	case dto.LeaderboardBadges:
		rows, err = analytics.BadgeScoresSince(since)
	case dto.LeaderboardAchievements:
		rows, err = analytics.AchievementScoresSince(since)
	case dto.LeaderboardContent:
		rows, err = analytics.ContentScoresSince(since)
	case dto.LeaderboardEngagement:
		rows, err = svc.engagementScores(ctx, since)
	default:
		return nil, shared.NewBadRequestError(nil, fmt.Sprintf("Unknown leaderboard type %q", boardType))
	}
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	sortScores(rows)
	return rows, nil
}

// engagementScores queries each event kind concurrently and blends them in
// memory.
func (svc *LeaderboardService) engagementScores(ctx context.Context, since time.Time) ([]repositories.ScoreRow, error) {
	kinds := make([]string, 0, len(engagementWeights))
	for kind := range engagementWeights {
		kinds = append(kinds, kind)
	}
	results := make([][]repositories.ScoreRow, len(kinds))

	g, _ := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			rows, err := svc.dbSvc.Analytics().EngagementScoresSince(kind, since)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := map[string]*repositories.ScoreRow{}
	for i, rows := range results {
		weight := engagementWeights[kinds[i]]
		for _, r := range rows {
			m, ok := merged[r.UserID]
			if !ok {
				m = &repositories.ScoreRow{UserID: r.UserID}
				merged[r.UserID] = m
			}
			m.Score += r.Score * weight
			if r.LastActivity.After(m.LastActivity) {
				m.LastActivity = r.LastActivity
			}
		}
	}

	out := make([]repositories.ScoreRow, 0, len(merged))
	for _, m := range merged {
		out = append(out, *m)
	}
	return out, nil
}

func sortScores(rows []repositories.ScoreRow) {
	slices.SortFunc(rows, func(a, b repositories.ScoreRow) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		if c := a.LastActivity.Compare(b.LastActivity); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
}

func windowStart(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case dto.TimeframeDaily:
		return shared.StartOfDay(now), nil
	case dto.TimeframeWeekly:
		return now.AddDate(0, 0, -7), nil
	case dto.TimeframeMonthly:
		return now.AddDate(0, -1, 0), nil
	case dto.TimeframeAllTime:
		return time.Time{}, nil
	}
	return time.Time{}, shared.NewBadRequestError(nil, fmt.Sprintf("Unknown timeframe %q", timeframe))
}

func boardKey(boardType, timeframe string) string {
	return boardType + ":" + timeframe
}

// periodKey names the period a snapshot belongs to. Keys of one timeframe
// sort chronologically.
func periodKey(timeframe string, now time.Time) string {
	switch timeframe {
	case dto.TimeframeWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case dto.TimeframeMonthly:
		return shared.MonthKey(now)
	}
	return shared.DayKey(now)
}
