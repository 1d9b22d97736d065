package entity

import "time"

// ChannelProfile is the public projection of a channel with its derived
// subscription figures.
type ChannelProfile struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"cover_image"`
	SubscribersCount  int64  `json:"subscribers_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

type OwnerSummary struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// WatchedVideo is one watch-history entry. Owner is nil when the owning
// user no longer exists.
type WatchedVideo struct {
	Video
	Owner *OwnerSummary `json:"owner"`
}

type CommentAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

type CommentView struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Owner     *CommentAuthor `json:"owner"`
	Video     *Video         `json:"video"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	User *PublicUser `json:"user"`
	TokenPair
}
