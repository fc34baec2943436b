package repositories

import (
	"strings"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

// ScoreRow is one user's score on a leaderboard dimension. LastActivity is the
// most recent contributing row and breaks ties.
type ScoreRow struct {
	UserID       string
	Score        float64
	LastActivity time.Time
}

type scoreScan struct {
	UserID string
	Score  float64
	LastAt string
}

// AnalyticRepository runs the grouped aggregates behind leaderboards.
type AnalyticRepository struct {
	BaseRepository
}

func NewAnalyticRepository(db *gorm.DB) *AnalyticRepository {
	return &AnalyticRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// TotalXPScores reads the lifetime column rather than summing transactions.
func (ds *AnalyticRepository) TotalXPScores() ([]ScoreRow, error) {
	var stats []model.UserStats
	if err := ds.db.Where("total_xp > 0").Find(&stats).Error; err != nil {
		return nil, err
	}
	rows := make([]ScoreRow, 0, len(stats))
	for _, s := range stats {
		row := ScoreRow{UserID: s.UserID, Score: float64(s.TotalXP)}
		if s.LastXPAt != nil {
			row.LastActivity = *s.LastXPAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (ds *AnalyticRepository) XPScoresSince(since time.Time) ([]ScoreRow, error) {
	return ds.grouped(ds.db.Model(&model.XPTransaction{}).
		Select("user_id, SUM(total_xp) AS score, MAX(created_at) AS last_at").
		Where("created_at >= ?", since))
}

func (ds *AnalyticRepository) BadgeScoresSince(since time.Time) ([]ScoreRow, error) {
	return ds.grouped(ds.db.Model(&model.UserBadge{}).
		Select("user_id, COUNT(*) AS score, MAX(earned_at) AS last_at").
		Where("earned_at >= ?", since))
}

func (ds *AnalyticRepository) AchievementScoresSince(since time.Time) ([]ScoreRow, error) {
	return ds.grouped(ds.db.Model(&model.UserAchievement{}).
		Select("user_id, SUM(points) AS score, MAX(earned_at) AS last_at").
		Where("kind = ? AND earned_at >= ?", model.AchievementKindCatalog, since))
}

func (ds *AnalyticRepository) ContentScoresSince(since time.Time) ([]ScoreRow, error) {
	return ds.grouped(ds.db.Model(&model.ContentPost{}).
		Select("user_id, COUNT(*) AS score, MAX(published_at) AS last_at").
		Where("status = ? AND published_at >= ?", model.PostStatusPublished, since))
}

func (ds *AnalyticRepository) EngagementScoresSince(kind string, since time.Time) ([]ScoreRow, error) {
	return ds.grouped(ds.db.Model(&model.EngagementEvent{}).
		Select("user_id, COUNT(*) AS score, MAX(created_at) AS last_at").
		Where("kind = ? AND created_at >= ?", kind, since))
}

func (ds *AnalyticRepository) grouped(q *gorm.DB) ([]ScoreRow, error) {
	var scans []scoreScan
	if err := q.Group("user_id").Scan(&scans).Error; err != nil {
		return nil, err
	}
	rows := make([]ScoreRow, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, ScoreRow{UserID: s.UserID, Score: s.Score, LastActivity: parseDBTime(s.LastAt)})
	}
	return rows, nil
}

// Aggregated timestamps come back as text from sqlite and as timestamps from
// postgres; both are scanned into a string.
var dbTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func parseDBTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dbTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
