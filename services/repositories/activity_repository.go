package repositories

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

// ActivityRepository stores the activity sources that metrics are derived
// from: published posts, roadmap tasks and engagement events.
type ActivityRepository struct {
	BaseRepository
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ActivityRepository) CreatePost(post *model.ContentPost) error {
	if post.ID == "" {
		post.ID = newID()
	}
	return ds.db.Create(post).Error
}

func (ds *ActivityRepository) CountPublished(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ContentPost{}).
		Where("user_id = ? AND status = ?", userID, model.PostStatusPublished).
		Count(&count).Error
	return count, err
}

func (ds *ActivityRepository) PublishTimesSince(userID string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := ds.db.Model(&model.ContentPost{}).
		Where("user_id = ? AND status = ? AND published_at >= ?", userID, model.PostStatusPublished, since).
		Pluck("published_at", &times).Error
	return times, err
}

func (ds *ActivityRepository) DistinctPlatformsSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ContentPost{}).
		Where("user_id = ? AND status = ? AND published_at >= ? AND platform <> ''", userID, model.PostStatusPublished, since).
		Distinct("platform").
		Count(&count).Error
	return count, err
}

func (ds *ActivityRepository) CreateTask(task *model.Task) error {
	if task.ID == "" {
		task.ID = newID()
	}
	return ds.db.Create(task).Error
}

func (ds *ActivityRepository) GetTask(userID, id string) (*model.Task, error) {
	var task model.Task
	if err := ds.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask reports false when the task was already completed.
func (ds *ActivityRepository) CompleteTask(userID, id string, at time.Time) (bool, error) {
	res := ds.db.Model(&model.Task{}).
		Where("id = ? AND user_id = ? AND completed_at IS NULL", id, userID).
		Update("completed_at", at)
	return res.RowsAffected > 0, res.Error
}

func (ds *ActivityRepository) CountCompletedTasks(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Task{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}

func (ds *ActivityRepository) CountCompletedTasksSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Task{}).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (ds *ActivityRepository) TaskCompletionTimesSince(userID string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := ds.db.Model(&model.Task{}).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Pluck("completed_at", &times).Error
	return times, err
}

func (ds *ActivityRepository) CreateEngagement(event *model.EngagementEvent) error {
	if event.ID == "" {
		event.ID = newID()
	}
	return ds.db.Create(event).Error
}

func (ds *ActivityRepository) CountEngagementSince(userID, kind string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.EngagementEvent{}).
		Where("user_id = ? AND kind = ? AND created_at >= ?", userID, kind, since).
		Count(&count).Error
	return count, err
}
