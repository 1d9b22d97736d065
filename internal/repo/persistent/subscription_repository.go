package persistent

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, channelID, subscriberID string) (*entity.Subscription, error)
	// Delete removes every edge between the pair and returns how many rows
	// went away.
	Delete(ctx context.Context, channelID, subscriberID string) (int64, error)
	Exists(ctx context.Context, channelID, subscriberID string) (bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, channelID, subscriberID string) (*entity.Subscription, error) {
	subscriptionModel := &model.SubscriptionModel{
		ChannelID:    channelID,
		SubscriberID: subscriberID,
	}
	if err := r.db.WithContext(ctx).Create(subscriptionModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToSubscriptionEntity(subscriptionModel), nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, channelID, subscriberID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("channel_id = ? AND subscriber_id = ?", channelID, subscriberID).
		Delete(&model.SubscriptionModel{})
	return result.RowsAffected, translateError(result.Error)
}

func (r *subscriptionRepository) Exists(ctx context.Context, channelID, subscriberID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("channel_id = ? AND subscriber_id = ?", channelID, subscriberID).
		Limit(1).
		Count(&count).Error
	return count > 0, translateError(err)
}
