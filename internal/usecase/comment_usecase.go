package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"
	"vidtube/pkg/queue"

	"github.com/google/uuid"
)

const (
	DefaultCommentPage  = 1
	DefaultCommentLimit = 10
	MaxCommentLimit     = 100

	commentNotificationPriority = 3
)

type CommentUseCase interface {
	// GetVideoComments returns one page of a video's comments. A page past
	// the end is reported as NotFound rather than as an empty list.
	GetVideoComments(ctx context.Context, videoID string, page, limit int) ([]*entity.CommentView, error)
	AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, commentID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	videoRepo   persistent.VideoRepository
	notifier    Notifier
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	videoRepo persistent.VideoRepository,
	notifier Notifier,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *commentUseCase) GetVideoComments(ctx context.Context, videoID string, page, limit int) ([]*entity.CommentView, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, apperr.Validation("invalid video id")
	}
	if page < 1 || limit < 1 {
		return nil, apperr.Validation("page and limit must be positive")
	}
	if limit > MaxCommentLimit {
		limit = MaxCommentLimit
	}
	// An offset that does not fit in an int is past any stored page.
	if page-1 > math.MaxInt/limit {
		return nil, apperr.NotFound("no comments found")
	}

	comments, err := uc.commentRepo.ListByVideo(ctx, videoID, limit, (page-1)*limit)
	if err != nil {
		uc.logger.Error("Failed to list comments for video %s: %v", videoID, err)
		return nil, apperr.Internal("failed to load comments", err)
	}
	if len(comments) == 0 {
		return nil, apperr.NotFound("no comments found")
	}
	return comments, nil
}

func (uc *commentUseCase) AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, apperr.Validation("invalid video id")
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("video not found")
		}
		uc.logger.Error("Failed to load video %s: %v", videoID, err)
		return nil, apperr.Internal("failed to add comment", err)
	}

	comment := &entity.Comment{
		Content: content,
		OwnerID: userID,
		VideoID: video.ID,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Error("Failed to create comment on video %s: %v", videoID, err)
		return nil, apperr.Internal("failed to add comment", err)
	}

	if video.OwnerID != userID {
		publishAsync(uc.notifier, uc.logger, queue.NotificationTask{
			Type:        queue.TaskComment,
			RecipientID: video.OwnerID,
			ActorID:     userID,
			VideoID:     video.ID,
			CommentID:   comment.ID,
			Priority:    commentNotificationPriority,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, commentID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if _, err := uuid.Parse(commentID); err != nil {
		return nil, apperr.Validation("invalid comment id")
	}

	comment, err := uc.commentRepo.UpdateContent(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		uc.logger.Error("Failed to update comment %s: %v", commentID, err)
		return nil, apperr.Internal("failed to update comment", err)
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := uuid.Parse(commentID); err != nil {
		return apperr.Validation("invalid comment id")
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperr.NotFound("comment not found")
		}
		uc.logger.Error("Failed to delete comment %s: %v", commentID, err)
		return apperr.Internal("failed to delete comment", err)
	}
	return nil
}
