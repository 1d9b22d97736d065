package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
)

type seedRepos struct {
	users         persistent.UserRepository
	videos        persistent.VideoRepository
	subscriptions persistent.SubscriptionRepository
	comments      persistent.CommentRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	repos := seedRepos{
		users:         persistent.NewUserRepository(db),
		videos:        persistent.NewVideoRepository(db),
		subscriptions: persistent.NewSubscriptionRepository(db),
		comments:      persistent.NewCommentRepository(db),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seedDatabase(ctx, repos, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, repos seedRepos, log *logger.Logger) error {
	testUsers := []struct {
		fullName string
		email    string
		username string
		password string
	}{
		{"Alice Liddell", "alice@test.com", "alice", "password123"},
		{"Bob Builder", "bob@test.com", "bob", "password123"},
		{"Charlie Brown", "charlie@test.com", "charlie", "password123"},
		{"Diana Prince", "diana@test.com", "diana", "password123"},
	}

	users := make([]*entity.User, 0, len(testUsers))
	for _, userData := range testUsers {
		existing, err := repos.users.GetByUsernameOrEmail(ctx, userData.username, userData.email)
		if err == nil {
			log.Info("User %s already exists, skipping", existing.Username)
			users = append(users, existing)
			continue
		}
		if !errors.Is(err, persistent.ErrNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", userData.username, err)
		}

		user := &entity.User{
			Username: userData.username,
			Email:    userData.email,
			FullName: userData.fullName,
			Avatar:   fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", userData.username),
		}
		if err := repos.users.Create(ctx, user, userData.password); err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.username, err)
		}
		log.Info("Created user: %s (%s)", user.Username, user.Email)
		users = append(users, user)
	}

	videos := make([]*entity.Video, 0, len(users)*2)
	for _, owner := range users[:2] {
		for i := 1; i <= 3; i++ {
			video := &entity.Video{
				OwnerID:     owner.ID,
				Title:       fmt.Sprintf("%s's video #%d", owner.FullName, i),
				Description: "Seeded demo video",
				VideoFile:   fmt.Sprintf("https://cdn.example.com/videos/%s-%d.mp4", owner.Username, i),
				Thumbnail:   fmt.Sprintf("https://cdn.example.com/thumbs/%s-%d.jpg", owner.Username, i),
				Duration:    float64(60 * i),
				IsPublished: true,
			}
			if err := repos.videos.Create(ctx, video); err != nil {
				return fmt.Errorf("failed to create video: %w", err)
			}
			videos = append(videos, video)
		}
	}
	log.Info("Created %d videos", len(videos))

	// Everyone follows alice; bob follows charlie twice to exercise duplicate edges.
	alice := users[0]
	for _, subscriber := range users[1:] {
		if _, err := repos.subscriptions.Create(ctx, alice.ID, subscriber.ID); err != nil {
			return fmt.Errorf("failed to subscribe %s to %s: %w", subscriber.Username, alice.Username, err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := repos.subscriptions.Create(ctx, users[2].ID, users[1].ID); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	}

	for i, video := range videos {
		commenter := users[(i+1)%len(users)]
		comment := &entity.Comment{
			Content: fmt.Sprintf("Comment from %s", commenter.Username),
			OwnerID: commenter.ID,
			VideoID: video.ID,
		}
		if err := repos.comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}

	// Watch history keeps order and repeats.
	viewer := users[3]
	for _, video := range []*entity.Video{videos[0], videos[3], videos[0]} {
		if err := repos.users.AppendWatchHistory(ctx, viewer.ID, video.ID); err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}
	}

	return nil
}
