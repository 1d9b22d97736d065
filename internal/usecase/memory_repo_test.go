package usecase

import (
	"context"
	"strings"
	"sync"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/password"

	"github.com/google/uuid"
)

// memoryUserRepository is a stateful UserRepository for session flows that
// span several calls. It hashes on create the same way the gorm hook does.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User, plainPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return persistent.ErrDuplicate
		}
	}
	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	user.ID = uuid.New().String()
	user.Username = strings.ToLower(user.Username)
	user.Password = hashed
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) GetByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if (username != "" && user.Username == username) || (email != "" && user.Email == email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, persistent.ErrNotFound
}

func (r *memoryUserRepository) SetRefreshToken(_ context.Context, id string, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return persistent.ErrNotFound
	}
	if token == nil {
		user.RefreshToken = nil
		return nil
	}
	value := *token
	user.RefreshToken = &value
	return nil
}

func (r *memoryUserRepository) RotateRefreshToken(_ context.Context, id, current, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.RefreshToken == nil || *user.RefreshToken != current {
		return false, nil
	}
	user.RefreshToken = &next
	return true, nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, id, plainPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return persistent.ErrNotFound
	}
	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return nil
}

func (r *memoryUserRepository) UpdateAccount(ctx context.Context, id, email, fullName string) (*entity.User, error) {
	r.mu.Lock()
	user, ok := r.users[id]
	if ok {
		user.Email = email
		user.FullName = fullName
	}
	r.mu.Unlock()
	if !ok {
		return nil, persistent.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepository) UpdateAvatar(ctx context.Context, id, url string) (*entity.User, error) {
	r.mu.Lock()
	user, ok := r.users[id]
	if ok {
		user.Avatar = url
	}
	r.mu.Unlock()
	if !ok {
		return nil, persistent.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepository) UpdateCoverImage(ctx context.Context, id, url string) (*entity.User, error) {
	r.mu.Lock()
	user, ok := r.users[id]
	if ok {
		user.CoverImage = url
	}
	r.mu.Unlock()
	if !ok {
		return nil, persistent.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepository) AppendWatchHistory(_ context.Context, id, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return persistent.ErrNotFound
	}
	user.WatchHistory = append(user.WatchHistory, videoID)
	return nil
}

var _ persistent.UserRepository = (*memoryUserRepository)(nil)
