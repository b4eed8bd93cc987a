package repositories

import (
	"errors"

	"civix_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	Create(db *gorm.DB, report *models.Report) error
	FindByID(db *gorm.DB, id uint) (*models.Report, error)
	FindAll(db *gorm.DB, filter ReportFilter) ([]models.Report, int64, error)
	UpdateStatus(db *gorm.DB, reportID uint, status models.ReportStatus) error
	FindFollowedByUser(db *gorm.DB, userID uint, page, pageSize int) ([]models.Report, int64, error)
}

type ReportFilter struct {
	Category string
	Status   models.ReportStatus
	Page     int
	PageSize int
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(db *gorm.DB, report *models.Report) error {
	return db.Create(report).Error
}

func (r *reportRepository) FindByID(db *gorm.DB, id uint) (*models.Report, error) {
	var report models.Report
	if err := db.Preload("Reporter").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindAll(db *gorm.DB, filter ReportFilter) ([]models.Report, int64, error) {
	query := db.Model(&models.Report{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) UpdateStatus(db *gorm.DB, reportID uint, status models.ReportStatus) error {
	result := db.Model(&models.Report{}).Where("id = ?", reportID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *reportRepository) FindFollowedByUser(db *gorm.DB, userID uint, page, pageSize int) ([]models.Report, int64, error) {
	query := db.Model(&models.Report{}).
		Joins("JOIN follows ON follows.report_id = reports.id").
		Where("follows.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	offset := (page - 1) * pageSize
	err := query.Order("reports.created_at DESC").Limit(pageSize).Offset(offset).Find(&reports).Error
	return reports, total, err
}
