package usecase

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/password"
)

type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// LoginInput identifies the user by Username or Email; one is enough.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

type SessionUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.PublicUser, error)
	Login(ctx context.Context, input LoginInput) (*entity.Session, error)
	Logout(ctx context.Context, userID string) error
	RefreshSession(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type sessionUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	blobStore  BlobStore
	logger     *logger.Logger
}

func NewSessionUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	blobStore BlobStore,
	logger *logger.Logger,
) SessionUseCase {
	return &sessionUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		blobStore:  blobStore,
		logger:     logger,
	}
}

func (uc *sessionUseCase) Register(ctx context.Context, input RegisterInput) (*entity.PublicUser, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if fullName == "" || email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperr.Validation("all fields are required")
	}
	if input.AvatarPath == "" {
		return nil, apperr.Validation("avatar file is required")
	}

	_, err := uc.userRepo.GetByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("user with email or username already exists")
	case !errors.Is(err, persistent.ErrNotFound):
		uc.logger.Error("Failed to look up user %s: %v", username, err)
		return nil, apperr.Internal("failed to register user", err)
	}

	avatarURL, err := uc.blobStore.Store(ctx, input.AvatarPath)
	if err != nil || avatarURL == "" {
		uc.logger.Error("Failed to upload avatar for %s: %v", username, err)
		return nil, apperr.Upload("failed to upload avatar", err)
	}

	var coverImageURL string
	if input.CoverImagePath != "" {
		coverImageURL, err = uc.blobStore.Store(ctx, input.CoverImagePath)
		if err != nil {
			uc.logger.Warn("Cover image upload failed for %s, continuing without it: %v", username, err)
			coverImageURL = ""
		}
	}

	user := &entity.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
	}
	if err := uc.userRepo.Create(ctx, user, input.Password); err != nil {
		if errors.Is(err, persistent.ErrDuplicate) {
			return nil, apperr.Conflict("user with email or username already exists")
		}
		uc.logger.Error("Failed to create user %s: %v", username, err)
		return nil, apperr.Internal("failed to register user", err)
	}

	uc.logger.Info("Registered user %s (%s)", user.Username, user.ID)
	return user.Public(), nil
}

func (uc *sessionUseCase) Login(ctx context.Context, input LoginInput) (*entity.Session, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.TrimSpace(input.Email)

	if username == "" && email == "" {
		return nil, apperr.Validation("username or email is required")
	}
	if input.Password == "" {
		return nil, apperr.Validation("password is required")
	}

	user, err := uc.userRepo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("user does not exist")
		}
		uc.logger.Error("Failed to load user for login: %v", err)
		return nil, apperr.Internal("failed to log in", err)
	}

	ok, err := password.Verify(input.Password, user.Password)
	if err != nil {
		uc.logger.Error("Failed to verify password for %s: %v", user.ID, err)
		return nil, apperr.Internal("failed to log in", err)
	}
	if !ok {
		return nil, apperr.Auth(apperr.CauseWrongPassword, "invalid user credentials", nil)
	}

	tokens, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}

	// The new refresh token must be on record before it is handed out.
	if err := uc.userRepo.SetRefreshToken(ctx, user.ID, &tokens.RefreshToken); err != nil {
		uc.logger.Error("Failed to persist refresh token for %s: %v", user.ID, err)
		return nil, apperr.Internal("failed to log in", err)
	}

	return &entity.Session{User: user.Public(), TokenPair: *tokens}, nil
}

func (uc *sessionUseCase) Logout(ctx context.Context, userID string) error {
	err := uc.userRepo.SetRefreshToken(ctx, userID, nil)
	if err != nil && !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to clear refresh token for %s: %v", userID, err)
		return apperr.Internal("failed to log out", err)
	}
	return nil
}

func (uc *sessionUseCase) RefreshSession(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Auth(apperr.CauseMissing, "unauthorized request", nil)
	}

	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.Auth(apperr.CauseInvalid, "invalid refresh token", err)
		}
		uc.logger.Error("Failed to load user %s for refresh: %v", claims.UserID, err)
		return nil, apperr.Internal("failed to refresh session", err)
	}

	if !user.HasSession(refreshToken) {
		return nil, apperr.Auth(apperr.CauseInvalid, "refresh token is expired or used", nil)
	}

	tokens, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}

	rotated, err := uc.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, tokens.RefreshToken)
	if err != nil {
		uc.logger.Error("Failed to rotate refresh token for %s: %v", user.ID, err)
		return nil, apperr.Internal("failed to refresh session", err)
	}
	if !rotated {
		// Another refresh or a logout got there first.
		return nil, apperr.Auth(apperr.CauseInvalid, "refresh token is expired or used", nil)
	}

	return tokens, nil
}

func (uc *sessionUseCase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validation("old and new passwords are required")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return apperr.Internal("failed to change password", err)
	}

	ok, err := password.Verify(oldPassword, user.Password)
	if err != nil {
		uc.logger.Error("Failed to verify password for %s: %v", userID, err)
		return apperr.Internal("failed to change password", err)
	}
	if !ok {
		return apperr.Auth(apperr.CauseWrongPassword, "invalid old password", nil)
	}
	if newPassword == oldPassword {
		return apperr.Validation("new password must be different from the old password")
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, newPassword); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		uc.logger.Error("Failed to update password for %s: %v", userID, err)
		return apperr.Internal("failed to change password", err)
	}
	return nil
}

func (uc *sessionUseCase) issueTokens(userID string) (*entity.TokenPair, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(userID)
	if err != nil {
		uc.logger.Error("Failed to generate access token: %v", err)
		return nil, apperr.Internal("failed to generate tokens", err)
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		uc.logger.Error("Failed to generate refresh token: %v", err)
		return nil, apperr.Internal("failed to generate tokens", err)
	}
	return &entity.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
