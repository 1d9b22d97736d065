package http

import (
	"context"
	"net/http"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	uploadDir      string
}

func NewAccountHandler(accountUseCase usecase.AccountUseCase, uploadDir string) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		uploadDir:      uploadDir,
	}
}

type UpdateAccountRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// CurrentUser godoc
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.PublicUser
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/current-user [get]
func (h *AccountHandler) CurrentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.accountUseCase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAccount godoc
// @Summary      Update account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateAccountRequest true "New email and full name"
// @Success      200  {object}  entity.PublicUser
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users/update-account [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountUseCase.UpdateAccountDetails(c.Request.Context(), userID, req.Email, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAvatar godoc
// @Summary      Replace the avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image"
// @Success      200  {object}  entity.PublicUser
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/avatar [patch]
func (h *AccountHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.accountUseCase.UpdateAvatar)
}

// UpdateCoverImage godoc
// @Summary      Replace the cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage formData file true "Cover image"
// @Success      200  {object}  entity.PublicUser
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/cover-image [patch]
func (h *AccountHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.accountUseCase.UpdateCoverImage)
}

func (h *AccountHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID, path string) (*entity.PublicUser, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	path, err := saveUpload(c, field, h.uploadDir)
	if err != nil {
		respondError(c, err)
		return
	}
	defer removeUpload(path)

	user, err := update(c.Request.Context(), userID, path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// RecordView godoc
// @Summary      Record a video view
// @Description  Append the video to the caller's watch history
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /video/{videoId}/view [post]
func (h *AccountHandler) RecordView(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.accountUseCase.RecordView(c.Request.Context(), userID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "View recorded"})
}
