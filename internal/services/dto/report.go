package dto

import "civix_backend/internal/models"

type CreateReportRequest struct {
	Title       string  `json:"title" validate:"required,max=150"`
	Description string  `json:"description" validate:"required,max=2000"`
	Category    string  `json:"category" validate:"required,oneof=roads lighting trash water parks other"`
	Latitude    float64 `json:"latitude" validate:"required,latitude"`
	Longitude   float64 `json:"longitude" validate:"required,longitude"`
}

type UpdateReportStatusRequest struct {
	Status models.ReportStatus `json:"status" validate:"required,oneof=open in_progress resolved"`
}

type ReportResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Status      models.ReportStatus `json:"status"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	ReporterID  uint                `json:"reporterId"`
	Votes       int64               `json:"votes"`
}

type ReportListResponse struct {
	Reports  []ReportResponse `json:"reports"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}
