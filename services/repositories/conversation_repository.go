package repositories

import (
	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepository struct {
	BaseRepository
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ConversationRepository) GetConversation(id string) (*model.AIConversation, error) {
	var conv model.AIConversation
	if err := ds.db.Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// SaveConversation upserts messages and context by id.
func (ds *ConversationRepository) SaveConversation(conv *model.AIConversation) error {
	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "messages", "context", "updated_at"}),
	}).Create(conv).Error
}

func (ds *ConversationRepository) ListByUser(userID string, limit int) ([]model.AIConversation, error) {
	var rows []model.AIConversation
	err := ds.db.Where("user_id = ?", userID).Order("updated_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (ds *ConversationRepository) DeleteConversation(userID, id string) (bool, error) {
	res := ds.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.AIConversation{})
	return res.RowsAffected > 0, res.Error
}
