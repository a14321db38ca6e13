package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"taskmanager-backend/internal/auth"
	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/user/domain"
	"taskmanager-backend/internal/user/dto"
	"taskmanager-backend/internal/user/usecase"
	"taskmanager-backend/pkg/avatar"
	"taskmanager-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and part headers around the
// avatar file itself.
const multipartOverhead = 64 << 10

// UserHandler handles account, profile and avatar requests
type UserHandler struct {
	userUsecase usecase.UserUsecase
	log         logging.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUsecase usecase.UserUsecase, log logging.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		log:         log,
	}
}

// Signup registers a user and returns the first session token
// POST /users
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	resp, err := h.userUsecase.Signup(c.Request.Context(), &req)
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	resp, err := h.userUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the token used for this request
// POST /users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userUsecase.Logout(c.Request.Context(), auth.CurrentUser(c), auth.CurrentToken(c)); err != nil {
		common.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// LogoutAll POST /users/logoutAll
func (h *UserHandler) LogoutAll(c *gin.Context) {
	if err := h.userUsecase.LogoutAll(c.Request.Context(), auth.CurrentUser(c)); err != nil {
		common.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// Me GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}

// UpdateMe applies allow-listed profile changes
// PATCH /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	var req dto.UpdateUserRequest
	if err := common.DecodeAllowed(body, domain.UpdatableFields, &req); err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), auth.CurrentUser(c), &req)
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe removes the account together with its tasks
// DELETE /users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, err := h.userUsecase.DeleteProfile(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar POST /users/me/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, avatar.MaxSize+multipartOverhead)

	file, err := c.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, avatar.ErrTooLarge))
			return
		}
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, avatar.ErrUnsupportedType))
		return
	}
	if file.Size > avatar.MaxSize {
		common.RespondError(c, h.log, fmt.Errorf("%w: %v", common.ErrValidation, avatar.ErrTooLarge))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, avatar.MaxSize+1))
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	if err := h.userUsecase.SetAvatar(c.Request.Context(), auth.CurrentUser(c), file.Filename, data); err != nil {
		common.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteAvatar DELETE /users/me/avatar
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if err := h.userUsecase.RemoveAvatar(c.Request.Context(), auth.CurrentUser(c)); err != nil {
		common.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetAvatar serves a user's avatar without authentication
// GET /users/:id/avatar
func (h *UserHandler) GetAvatar(c *gin.Context) {
	data, err := h.userUsecase.GetAvatar(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, h.log, err)
		return
	}

	c.Data(http.StatusOK, avatar.ContentType, data)
}
