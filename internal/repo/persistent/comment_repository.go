package persistent

import (
	"context"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	// ListByVideo returns one page of comments with author and video
	// resolved, oldest first.
	ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*entity.CommentView, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return translateError(err)
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	result := r.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CommentModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const commentsByVideoQuery = `
SELECT
	c.id,
	c.content,
	c.created_at,
	c.updated_at,
	o.id AS owner_ref,
	o.username AS owner_username,
	o.full_name AS owner_full_name,
	o.avatar AS owner_avatar,
	v.id AS video_ref,
	v.owner_id AS video_owner_id,
	v.title AS video_title,
	v.description AS video_description,
	v.video_file AS video_file,
	v.thumbnail AS video_thumbnail,
	v.duration AS video_duration,
	v.views AS video_views,
	v.is_published AS video_is_published,
	v.created_at AS video_created_at,
	v.updated_at AS video_updated_at
FROM comments c
LEFT JOIN users o ON o.id = c.owner_id
LEFT JOIN videos v ON v.id = c.video_id
WHERE c.video_id = ?
ORDER BY c.created_at ASC, c.id ASC
LIMIT ? OFFSET ?`

type commentViewRow struct {
	ID               string
	Content          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	OwnerRef         *string
	OwnerUsername    *string
	OwnerFullName    *string
	OwnerAvatar      *string
	VideoRef         *string
	VideoOwnerID     *string
	VideoTitle       *string
	VideoDescription *string
	VideoFile        *string
	VideoThumbnail   *string
	VideoDuration    *float64
	VideoViews       *int64
	VideoIsPublished *bool
	VideoCreatedAt   *time.Time
	VideoUpdatedAt   *time.Time
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*entity.CommentView, error) {
	var rows []commentViewRow
	if err := r.db.WithContext(ctx).Raw(commentsByVideoQuery, videoID, limit, offset).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	comments := make([]*entity.CommentView, 0, len(rows))
	for _, row := range rows {
		view := &entity.CommentView{
			ID:        row.ID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		if row.OwnerRef != nil {
			view.Owner = &entity.CommentAuthor{
				ID:       *row.OwnerRef,
				Username: deref(row.OwnerUsername),
				FullName: deref(row.OwnerFullName),
				Avatar:   deref(row.OwnerAvatar),
			}
		}
		if row.VideoRef != nil {
			view.Video = row.video()
		}
		comments = append(comments, view)
	}
	return comments, nil
}

func (row commentViewRow) video() *entity.Video {
	video := &entity.Video{
		ID:          *row.VideoRef,
		OwnerID:     deref(row.VideoOwnerID),
		Title:       deref(row.VideoTitle),
		Description: deref(row.VideoDescription),
		VideoFile:   deref(row.VideoFile),
		Thumbnail:   deref(row.VideoThumbnail),
	}
	if row.VideoDuration != nil {
		video.Duration = *row.VideoDuration
	}
	if row.VideoViews != nil {
		video.Views = *row.VideoViews
	}
	if row.VideoIsPublished != nil {
		video.IsPublished = *row.VideoIsPublished
	}
	if row.VideoCreatedAt != nil {
		video.CreatedAt = *row.VideoCreatedAt
	}
	if row.VideoUpdatedAt != nil {
		video.UpdatedAt = *row.VideoUpdatedAt
	}
	return video
}
