package handlers

import (
	"net/http"

	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/internal/services"
	"civix_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

// Create godoc
// @Summary      Report a municipal issue
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReportRequest true "Report data"
// @Success      201 {object} dto.ReportResponse
// @Failure      400 {object} apperrors.ErrorResponse
// @Router       /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// GetByID godoc
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200 {object} dto.ReportResponse
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /reports/{id} [get]
func (h *ReportHandler) GetByID(c *gin.Context) {
	reportID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	report, err := h.reportService.GetByID(h.GetDB(c), reportID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// List godoc
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        category query string false "Filter by category"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.ReportListResponse
// @Router       /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.ReportFilter{
		Status:   models.ReportStatus(c.Query("status")),
		Category: c.Query("category"),
		Page:     page,
		PageSize: pageSize,
	}

	resp, err := h.reportService.List(h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Change a report's status (admin)
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Param        request body dto.UpdateReportStatusRequest true "New status"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /reports/{id}/status [patch]
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	reportID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateReportStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.reportService.UpdateStatus(h.GetDB(c), reportID, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report status updated"})
}

// Vote godoc
// @Summary      Vote for a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200 {object} map[string]string
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /reports/{id}/vote [post]
func (h *ReportHandler) Vote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.reportService.Vote(h.GetDB(c), userID, reportID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}

// Unvote godoc
// @Summary      Withdraw a vote
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /reports/{id}/vote [delete]
func (h *ReportHandler) Unvote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.reportService.Unvote(h.GetDB(c), userID, reportID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote withdrawn"})
}

// Follow godoc
// @Summary      Follow a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200 {object} map[string]string
// @Failure      409 {object} apperrors.ErrorResponse
// @Router       /reports/{id}/follow [post]
func (h *ReportHandler) Follow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.reportService.Follow(h.GetDB(c), userID, reportID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Following report"})
}

// Unfollow godoc
// @Summary      Unfollow a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apperrors.ErrorResponse
// @Router       /reports/{id}/follow [delete]
func (h *ReportHandler) Unfollow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.reportService.Unfollow(h.GetDB(c), userID, reportID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed report"})
}

// ListFollowed godoc
// @Summary      List reports the caller follows
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.ReportListResponse
// @Router       /reports/followed [get]
func (h *ReportHandler) ListFollowed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.reportService.ListFollowed(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
