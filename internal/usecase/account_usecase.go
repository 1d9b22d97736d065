package usecase

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
)

type AccountUseCase interface {
	GetCurrentUser(ctx context.Context, userID string) (*entity.PublicUser, error)
	UpdateAccountDetails(ctx context.Context, userID, email, fullName string) (*entity.PublicUser, error)
	UpdateAvatar(ctx context.Context, userID, avatarPath string) (*entity.PublicUser, error)
	UpdateCoverImage(ctx context.Context, userID, coverImagePath string) (*entity.PublicUser, error)
	RecordView(ctx context.Context, userID, videoID string) error
}

type accountUseCase struct {
	userRepo  persistent.UserRepository
	videoRepo persistent.VideoRepository
	blobStore BlobStore
	logger    *logger.Logger
}

func NewAccountUseCase(
	userRepo persistent.UserRepository,
	videoRepo persistent.VideoRepository,
	blobStore BlobStore,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		blobStore: blobStore,
		logger:    logger,
	}
}

func (uc *accountUseCase) GetCurrentUser(ctx context.Context, userID string) (*entity.PublicUser, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, uc.userError(userID, err)
	}
	return user.Public(), nil
}

func (uc *accountUseCase) UpdateAccountDetails(ctx context.Context, userID, email, fullName string) (*entity.PublicUser, error) {
	email = strings.TrimSpace(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || fullName == "" {
		return nil, apperr.Validation("email and full name are required")
	}

	user, err := uc.userRepo.UpdateAccount(ctx, userID, email, fullName)
	if err != nil {
		if errors.Is(err, persistent.ErrDuplicate) {
			return nil, apperr.Conflict("email is already in use")
		}
		return nil, uc.userError(userID, err)
	}
	return user.Public(), nil
}

func (uc *accountUseCase) UpdateAvatar(ctx context.Context, userID, avatarPath string) (*entity.PublicUser, error) {
	if avatarPath == "" {
		return nil, apperr.Validation("avatar file is missing")
	}

	url, err := uc.blobStore.Store(ctx, avatarPath)
	if err != nil || url == "" {
		uc.logger.Error("Failed to upload avatar for %s: %v", userID, err)
		return nil, apperr.Upload("failed to upload avatar", err)
	}

	user, err := uc.userRepo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		return nil, uc.userError(userID, err)
	}
	return user.Public(), nil
}

func (uc *accountUseCase) UpdateCoverImage(ctx context.Context, userID, coverImagePath string) (*entity.PublicUser, error) {
	if coverImagePath == "" {
		return nil, apperr.Validation("cover image file is missing")
	}

	url, err := uc.blobStore.Store(ctx, coverImagePath)
	if err != nil || url == "" {
		uc.logger.Error("Failed to upload cover image for %s: %v", userID, err)
		return nil, apperr.Upload("failed to upload cover image", err)
	}

	user, err := uc.userRepo.UpdateCoverImage(ctx, userID, url)
	if err != nil {
		return nil, uc.userError(userID, err)
	}
	return user.Public(), nil
}

// RecordView appends videoID to the viewer's watch history. Repeat views
// are kept.
func (uc *accountUseCase) RecordView(ctx context.Context, userID, videoID string) error {
	if _, err := uuid.Parse(videoID); err != nil {
		return apperr.Validation("invalid video id")
	}

	if _, err := uc.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperr.NotFound("video not found")
		}
		uc.logger.Error("Failed to load video %s: %v", videoID, err)
		return apperr.Internal("failed to record view", err)
	}

	if err := uc.userRepo.AppendWatchHistory(ctx, userID, videoID); err != nil {
		return uc.userError(userID, err)
	}
	return nil
}

func (uc *accountUseCase) userError(userID string, err error) error {
	if errors.Is(err, persistent.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	uc.logger.Error("User store failure for %s: %v", userID, err)
	return apperr.Internal("failed to access user", err)
}
