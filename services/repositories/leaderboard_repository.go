package repositories

import (
	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository struct {
	BaseRepository
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// SaveSnapshot replaces any earlier snapshot of the same board and period.
func (ds *LeaderboardRepository) SaveSnapshot(rows []model.LeaderboardSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = newID()
		}
	}
	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board"}, {Name: "period_key"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rank", "score", "created_at"}),
	}).CreateInBatches(rows, 200).Error
}

// PreviousRanks returns ranks from the latest snapshot taken before period.
func (ds *LeaderboardRepository) PreviousRanks(board, period string) (map[string]int, error) {
	var latest string
	err := ds.db.Model(&model.LeaderboardSnapshot{}).
		Select("COALESCE(MAX(period_key), '')").
		Where("board = ? AND period_key < ?", board, period).
		Scan(&latest).Error
	if err != nil || latest == "" {
		return map[string]int{}, err
	}

	var rows []model.LeaderboardSnapshot
	if err := ds.db.Where("board = ? AND period_key = ?", board, latest).Find(&rows).Error; err != nil {
		return nil, err
	}
	ranks := make(map[string]int, len(rows))
	for _, r := range rows {
		ranks[r.UserID] = r.Rank
	}
	return ranks, nil
}
