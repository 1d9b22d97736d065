package persistent

import (
	"context"
	"time"

	"vidtube/internal/entity"

	"gorm.io/gorm"
)

// ChannelRepository answers the read-side aggregates that span users,
// videos and subscriptions. Every method is a single round trip.
type ChannelRepository interface {
	GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID string) ([]*entity.WatchedVideo, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

// Counts are correlated subqueries rather than joins so that the two
// subscription fan-outs never multiply each other. Duplicate subscription
// rows are counted as they are stored.
const channelProfileQuery = `
SELECT
	u.username,
	u.email,
	u.full_name,
	u.avatar,
	u.cover_image,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
	EXISTS (
		SELECT 1 FROM subscriptions s
		WHERE s.channel_id = u.id AND s.subscriber_id = ?
	) AS is_subscribed
FROM users u
WHERE u.username = ?
LIMIT 1`

type channelProfileRow struct {
	Username          string
	Email             string
	FullName          string
	Avatar            string
	CoverImage        string
	SubscribersCount  int64
	SubscribedToCount int64
	IsSubscribed      bool
}

func (r *channelRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	// An anonymous viewer compares against NULL, which never matches.
	var viewer interface{}
	if viewerID != "" {
		viewer = viewerID
	}

	var rows []channelProfileRow
	if err := r.db.WithContext(ctx).Raw(channelProfileQuery, viewer, username).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	row := rows[0]
	return &entity.ChannelProfile{
		Username:          row.Username,
		Email:             row.Email,
		FullName:          row.FullName,
		Avatar:            row.Avatar,
		CoverImage:        row.CoverImage,
		SubscribersCount:  row.SubscribersCount,
		SubscribedToCount: row.SubscribedToCount,
		IsSubscribed:      row.IsSubscribed,
	}, nil
}

// History ids that no longer resolve to a video are dropped by the inner
// join; ORDINALITY keeps the stored order.
const watchHistoryQuery = `
SELECT
	v.id,
	v.owner_id,
	v.title,
	v.description,
	v.video_file,
	v.thumbnail,
	v.duration,
	v.views,
	v.is_published,
	v.created_at,
	v.updated_at,
	o.id AS owner_ref,
	o.username AS owner_username,
	o.full_name AS owner_full_name,
	o.avatar AS owner_avatar
FROM users u
CROSS JOIN LATERAL unnest(u.watch_history) WITH ORDINALITY AS wh(video_id, position)
JOIN videos v ON v.id = wh.video_id
LEFT JOIN users o ON o.id = v.owner_id
WHERE u.id = ?
ORDER BY wh.position`

type watchedVideoRow struct {
	ID            string
	OwnerID       string
	Title         string
	Description   string
	VideoFile     string
	Thumbnail     string
	Duration      float64
	Views         int64
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerRef      *string
	OwnerUsername *string
	OwnerFullName *string
	OwnerAvatar   *string
}

func (r *channelRepository) GetWatchHistory(ctx context.Context, userID string) ([]*entity.WatchedVideo, error) {
	var rows []watchedVideoRow
	if err := r.db.WithContext(ctx).Raw(watchHistoryQuery, userID).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	history := make([]*entity.WatchedVideo, 0, len(rows))
	for _, row := range rows {
		watched := &entity.WatchedVideo{
			Video: entity.Video{
				ID:          row.ID,
				OwnerID:     row.OwnerID,
				Title:       row.Title,
				Description: row.Description,
				VideoFile:   row.VideoFile,
				Thumbnail:   row.Thumbnail,
				Duration:    row.Duration,
				Views:       row.Views,
				IsPublished: row.IsPublished,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
		}
		if row.OwnerRef != nil {
			watched.Owner = &entity.OwnerSummary{
				Username: deref(row.OwnerUsername),
				FullName: deref(row.OwnerFullName),
				Avatar:   deref(row.OwnerAvatar),
			}
		}
		history = append(history, watched)
	}
	return history, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
