package http

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.PublicUser, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *MockSessionUseCase) Login(ctx context.Context, input usecase.LoginInput) (*entity.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionUseCase) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionUseCase) RefreshSession(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenPair), args.Error(1)
}

func (m *MockSessionUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

var _ usecase.SessionUseCase = (*MockSessionUseCase)(nil)

type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) GetCurrentUser(ctx context.Context, userID string) (*entity.PublicUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *MockAccountUseCase) UpdateAccountDetails(ctx context.Context, userID, email, fullName string) (*entity.PublicUser, error) {
	args := m.Called(ctx, userID, email, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *MockAccountUseCase) UpdateAvatar(ctx context.Context, userID, avatarPath string) (*entity.PublicUser, error) {
	args := m.Called(ctx, userID, avatarPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *MockAccountUseCase) UpdateCoverImage(ctx context.Context, userID, coverImagePath string) (*entity.PublicUser, error) {
	args := m.Called(ctx, userID, coverImagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *MockAccountUseCase) RecordView(ctx context.Context, userID, videoID string) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

var _ usecase.AccountUseCase = (*MockAccountUseCase)(nil)

type MockChannelUseCase struct {
	mock.Mock
}

func (m *MockChannelUseCase) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelProfile), args.Error(1)
}

func (m *MockChannelUseCase) GetWatchHistory(ctx context.Context, userID string) ([]*entity.WatchedVideo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WatchedVideo), args.Error(1)
}

func (m *MockChannelUseCase) Subscribe(ctx context.Context, subscriberID, channelUsername string) error {
	args := m.Called(ctx, subscriberID, channelUsername)
	return args.Error(0)
}

func (m *MockChannelUseCase) Unsubscribe(ctx context.Context, subscriberID, channelUsername string) error {
	args := m.Called(ctx, subscriberID, channelUsername)
	return args.Error(0)
}

var _ usecase.ChannelUseCase = (*MockChannelUseCase)(nil)

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) GetVideoComments(ctx context.Context, videoID string, page, limit int) ([]*entity.CommentView, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CommentView), args.Error(1)
}

func (m *MockCommentUseCase) AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, userID, videoID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(ctx context.Context, commentID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

var _ usecase.CommentUseCase = (*MockCommentUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware.
func asUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}
