package handlers

import (
	"net/http"

	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/internal/services"
	"civix_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// GetMe godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserDetail
// @Failure      401 {object} apperrors.ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List godoc
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        role query string false "Filter by role"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.UserListResponse
// @Failure      403 {object} apperrors.ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.UserFilter{
		Status:   models.UserStatus(c.Query("status")),
		Role:     models.UserRole(c.Query("role")),
		Page:     page,
		PageSize: pageSize,
	}

	resp, err := h.userService.List(h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Approve, reject or ban a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body dto.UpdateUserStatusRequest true "New status"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apperrors.ErrorResponse
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	userID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.UpdateStatus(h.GetDB(c), userID, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}
