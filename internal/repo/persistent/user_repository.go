package persistent

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	// Create persists user with plainPassword hashed by the model's
	// BeforeSave hook. Uniqueness violations return ErrDuplicate.
	Create(ctx context.Context, user *entity.User, plainPassword string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)
	SetRefreshToken(ctx context.Context, id string, token *string) error
	RotateRefreshToken(ctx context.Context, id, current, next string) (bool, error)
	UpdatePassword(ctx context.Context, id, plainPassword string) error
	UpdateAccount(ctx context.Context, id, email, fullName string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*entity.User, error)
	AppendWatchHistory(ctx context.Context, id, videoID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User, plainPassword string) error {
	userModel := ToUserModel(user)
	userModel.PlainPassword = plainPassword
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return translateError(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToUserEntity(&userModel), nil
}

// GetByUsernameOrEmail matches either field; an empty argument never
// matches.
func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, ErrNotFound
	}

	var userModel model.UserModel
	query := r.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}
	if err := query.Order("created_at ASC").First(&userModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToUserEntity(&userModel), nil
}

// SetRefreshToken overwrites the stored refresh token; nil clears it.
func (r *userRepository) SetRefreshToken(ctx context.Context, id string, token *string) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RotateRefreshToken swaps current for next in a single conditional update
// and reports whether current was still the stored token.
func (r *userRepository) RotateRefreshToken(ctx context.Context, id, current, next string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Update("refresh_token", next)
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// UpdatePassword touches only the password column.
func (r *userRepository) UpdatePassword(ctx context.Context, id, plainPassword string) error {
	userModel := model.UserModel{ID: id, PlainPassword: plainPassword}
	result := r.db.WithContext(ctx).Model(&userModel).Updates(&userModel)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateAccount(ctx context.Context, id, email, fullName string) (*entity.User, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"email":     email,
		"full_name": fullName,
	})
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, url string) (*entity.User, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{"avatar": url})
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id, url string) (*entity.User, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{"cover_image": url})
}

func (r *userRepository) updateColumns(ctx context.Context, id string, columns map[string]interface{}) (*entity.User, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// AppendWatchHistory appends in place so concurrent views never overwrite
// each other.
func (r *userRepository) AppendWatchHistory(ctx context.Context, id, videoID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("watch_history", gorm.Expr("array_append(watch_history, CAST(? AS uuid))", videoID))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
