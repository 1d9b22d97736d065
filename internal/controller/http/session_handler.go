package http

import (
	"net/http"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the credential cookies set on login and refresh.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type SessionHandler struct {
	sessionUseCase usecase.SessionUseCase
	cookies        CookieConfig
	uploadDir      string
}

func NewSessionHandler(sessionUseCase usecase.SessionUseCase, cookies CookieConfig, uploadDir string) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		cookies:        cookies,
		uploadDir:      uploadDir,
	}
}

type RegisterRequest struct {
	FullName string `form:"fullName"`
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest accepts both spellings web and mobile clients send.
type RefreshRequest struct {
	RefreshToken      string `json:"refresh_token"`
	RefreshTokenCamel string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account with an avatar and an optional cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName    formData string true  "Full name"
// @Param        email       formData string true  "Email"
// @Param        username    formData string true  "Username"
// @Param        password    formData string true  "Password"
// @Param        avatar      formData file   true  "Avatar image"
// @Param        coverImage  formData file   false "Cover image"
// @Success      201  {object}  entity.PublicUser
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/register [post]
func (h *SessionHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	avatarPath, err := saveUpload(c, "avatar", h.uploadDir)
	if err != nil {
		respondError(c, err)
		return
	}
	defer removeUpload(avatarPath)

	coverImagePath, err := saveUpload(c, "coverImage", h.uploadDir)
	if err != nil {
		respondError(c, err)
		return
	}
	defer removeUpload(coverImagePath)

	user, err := h.sessionUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		AvatarPath:     avatarPath,
		CoverImagePath: coverImagePath,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate by username or email and receive access and refresh tokens
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  entity.Session
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionUseCase.Login(c.Request.Context(), usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, &session.TokenPair)
	c.JSON(http.StatusOK, session)
}

// Logout godoc
// @Summary      Log out
// @Description  Invalidate the current refresh token and clear credential cookies
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, MessageResponse{Message: "User logged out"})
}

// RefreshToken godoc
// @Summary      Refresh the session
// @Description  Exchange a refresh token (cookie or body) for a new token pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest false "Refresh token when no cookie is sent"
// @Success      200  {object}  entity.TokenPair
// @Failure      401  {object}  ErrorResponse
// @Router       /users/refresh-token [post]
func (h *SessionHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req RefreshRequest
		// An absent body just means no token was presented.
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
		if token == "" {
			token = req.RefreshTokenCamel
		}
	}

	tokens, err := h.sessionUseCase.RefreshSession(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, tokens)
	c.JSON(http.StatusOK, tokens)
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/change-password [post]
func (h *SessionHandler) ChangePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionUseCase.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

func (h *SessionHandler) setTokenCookies(c *gin.Context, tokens *entity.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func (h *SessionHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
}
