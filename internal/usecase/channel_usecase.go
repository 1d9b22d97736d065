package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
	"vidtube/pkg/queue"
)

const subscriptionNotificationPriority = 4

type ChannelUseCase interface {
	GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID string) ([]*entity.WatchedVideo, error)
	Subscribe(ctx context.Context, subscriberID, channelUsername string) error
	Unsubscribe(ctx context.Context, subscriberID, channelUsername string) error
}

type channelUseCase struct {
	channelRepo      persistent.ChannelRepository
	userRepo         persistent.UserRepository
	subscriptionRepo persistent.SubscriptionRepository
	notifier         Notifier
	logger           *logger.Logger
}

func NewChannelUseCase(
	channelRepo persistent.ChannelRepository,
	userRepo persistent.UserRepository,
	subscriptionRepo persistent.SubscriptionRepository,
	notifier Notifier,
	logger *logger.Logger,
) ChannelUseCase {
	return &channelUseCase{
		channelRepo:      channelRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

func (uc *channelUseCase) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.Validation("username is missing")
	}

	profile, err := uc.channelRepo.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("channel does not exist")
		}
		uc.logger.Error("Failed to load channel %s: %v", username, err)
		return nil, apperr.Internal("failed to load channel", err)
	}
	return profile, nil
}

func (uc *channelUseCase) GetWatchHistory(ctx context.Context, userID string) ([]*entity.WatchedVideo, error) {
	history, err := uc.channelRepo.GetWatchHistory(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load watch history for %s: %v", userID, err)
		return nil, apperr.Internal("failed to load watch history", err)
	}
	if history == nil {
		history = []*entity.WatchedVideo{}
	}
	return history, nil
}

// Subscribe is idempotent: an existing edge is left as is.
func (uc *channelUseCase) Subscribe(ctx context.Context, subscriberID, channelUsername string) error {
	channel, err := uc.resolveChannel(ctx, subscriberID, channelUsername)
	if err != nil {
		return err
	}

	exists, err := uc.subscriptionRepo.Exists(ctx, channel.ID, subscriberID)
	if err != nil {
		uc.logger.Error("Failed to check subscription %s -> %s: %v", subscriberID, channel.ID, err)
		return apperr.Internal("failed to subscribe", err)
	}
	if exists {
		return nil
	}

	if _, err := uc.subscriptionRepo.Create(ctx, channel.ID, subscriberID); err != nil {
		uc.logger.Error("Failed to create subscription %s -> %s: %v", subscriberID, channel.ID, err)
		return apperr.Internal("failed to subscribe", err)
	}

	publishAsync(uc.notifier, uc.logger, queue.NotificationTask{
		Type:        queue.TaskSubscription,
		RecipientID: channel.ID,
		ActorID:     subscriberID,
		Priority:    subscriptionNotificationPriority,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (uc *channelUseCase) Unsubscribe(ctx context.Context, subscriberID, channelUsername string) error {
	channel, err := uc.resolveChannel(ctx, subscriberID, channelUsername)
	if err != nil {
		return err
	}

	removed, err := uc.subscriptionRepo.Delete(ctx, channel.ID, subscriberID)
	if err != nil {
		uc.logger.Error("Failed to delete subscription %s -> %s: %v", subscriberID, channel.ID, err)
		return apperr.Internal("failed to unsubscribe", err)
	}
	if removed == 0 {
		return apperr.NotFound("subscription not found")
	}
	return nil
}

func (uc *channelUseCase) resolveChannel(ctx context.Context, subscriberID, channelUsername string) (*entity.User, error) {
	channelUsername = strings.ToLower(strings.TrimSpace(channelUsername))
	if channelUsername == "" {
		return nil, apperr.Validation("username is missing")
	}

	channel, err := uc.userRepo.GetByUsernameOrEmail(ctx, channelUsername, "")
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("channel does not exist")
		}
		uc.logger.Error("Failed to load channel %s: %v", channelUsername, err)
		return nil, apperr.Internal("failed to load channel", err)
	}
	if channel.ID == subscriberID {
		return nil, apperr.Validation("cannot subscribe to your own channel")
	}
	return channel, nil
}
