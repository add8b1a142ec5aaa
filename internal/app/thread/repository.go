package thread

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindOpenThreadByChannel(channelID string) (*Thread, error)
	FindOpenThreadByUser(userID string) (*Thread, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOpenThreadByChannel(channelID string) (*Thread, error) {
	var thread Thread
	err := r.db.
		Where("channel_id = ? AND closed_by_id IS NULL", channelID).
		First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *repository) FindOpenThreadByUser(userID string) (*Thread, error) {
	var thread Thread
	err := r.db.
		Where("user_id = ? AND closed_by_id IS NULL", userID).
		First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}
