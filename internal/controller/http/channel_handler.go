package http

import (
	"net/http"

	"vidtube/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelUseCase usecase.ChannelUseCase
}

func NewChannelHandler(channelUseCase usecase.ChannelUseCase) *ChannelHandler {
	return &ChannelHandler{channelUseCase: channelUseCase}
}

// GetChannelProfile godoc
// @Summary      Get a channel profile
// @Description  Public profile with subscriber counts; is_subscribed reflects the caller when authenticated
// @Tags         channels
// @Produce      json
// @Param        username path string true "Channel username"
// @Success      200  {object}  entity.ChannelProfile
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/channel/{username} [get]
func (h *ChannelHandler) GetChannelProfile(c *gin.Context) {
	profile, err := h.channelUseCase.GetChannelProfile(c.Request.Context(), c.Param("username"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetWatchHistory godoc
// @Summary      Get the caller's watch history
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.WatchedVideo
// @Failure      401  {object}  ErrorResponse
// @Router       /users/watch-history [get]
func (h *ChannelHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	history, err := h.channelUseCase.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Subscribe godoc
// @Summary      Subscribe to a channel
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/channel/{username}/subscription [post]
func (h *ChannelHandler) Subscribe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.channelUseCase.Subscribe(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Subscribed"})
}

// Unsubscribe godoc
// @Summary      Unsubscribe from a channel
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/channel/{username}/subscription [delete]
func (h *ChannelHandler) Unsubscribe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.channelUseCase.Unsubscribe(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Unsubscribed"})
}
