package services

import (
	"civix_backend/internal/models"
	"civix_backend/internal/repositories"
	"civix_backend/internal/services/dto"
	"civix_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReportService interface {
	Create(db *gorm.DB, reporterID uint, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetByID(db *gorm.DB, reportID uint) (*dto.ReportResponse, error)
	List(db *gorm.DB, filter repositories.ReportFilter) (*dto.ReportListResponse, error)
	UpdateStatus(db *gorm.DB, reportID uint, status models.ReportStatus) error

	Vote(db *gorm.DB, userID, reportID uint) error
	Unvote(db *gorm.DB, userID, reportID uint) error
	Follow(db *gorm.DB, userID, reportID uint) error
	Unfollow(db *gorm.DB, userID, reportID uint) error
	ListFollowed(db *gorm.DB, userID uint, page, pageSize int) (*dto.ReportListResponse, error)
}

type ReportServiceImpl struct {
	reportRepo repositories.ReportRepository
	voteRepo   repositories.VoteRepository
	followRepo repositories.FollowRepository
}

func NewReportService(
	reportRepo repositories.ReportRepository,
	voteRepo repositories.VoteRepository,
	followRepo repositories.FollowRepository,
) ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		voteRepo:   voteRepo,
		followRepo: followRepo,
	}
}

func (s *ReportServiceImpl) Create(db *gorm.DB, reporterID uint, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	report := &models.Report{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.ReportStatusOpen,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ReporterID:  reporterID,
	}

	if err := s.reportRepo.Create(db, report); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reportResponse(report, 0), nil
}

func (s *ReportServiceImpl) GetByID(db *gorm.DB, reportID uint) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	votes, err := s.voteRepo.CountByReport(db, reportID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reportResponse(report, votes), nil
}

func (s *ReportServiceImpl) List(db *gorm.DB, filter repositories.ReportFilter) (*dto.ReportListResponse, error) {
	reports, total, err := s.reportRepo.FindAll(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reportList(reports, total, filter.Page, filter.PageSize), nil
}

func (s *ReportServiceImpl) UpdateStatus(db *gorm.DB, reportID uint, status models.ReportStatus) error {
	if err := s.reportRepo.UpdateStatus(db, reportID, status); err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReportServiceImpl) Vote(db *gorm.DB, userID, reportID uint) error {
	if _, err := s.reportRepo.FindByID(db, reportID); err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.voteRepo.Create(db, &models.Vote{UserID: userID, ReportID: reportID}); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyVoted) {
			return apperrors.ErrConflict(err, "report", "Already voted for this report")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReportServiceImpl) Unvote(db *gorm.DB, userID, reportID uint) error {
	if err := s.voteRepo.DeleteByUserAndReport(db, userID, reportID); err != nil {
		if apperrors.Is(err, repositories.ErrVoteNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReportServiceImpl) Follow(db *gorm.DB, userID, reportID uint) error {
	if _, err := s.reportRepo.FindByID(db, reportID); err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.followRepo.Create(db, &models.Follow{UserID: userID, ReportID: reportID}); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyFollowing) {
			return apperrors.ErrConflict(err, "report", "Already following this report")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReportServiceImpl) Unfollow(db *gorm.DB, userID, reportID uint) error {
	if err := s.followRepo.DeleteByUserAndReport(db, userID, reportID); err != nil {
		if apperrors.Is(err, repositories.ErrFollowNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReportServiceImpl) ListFollowed(db *gorm.DB, userID uint, page, pageSize int) (*dto.ReportListResponse, error) {
	reports, total, err := s.reportRepo.FindFollowedByUser(db, userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reportList(reports, total, page, pageSize), nil
}

func reportResponse(report *models.Report, votes int64) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:          report.ID,
		Title:       report.Title,
		Description: report.Description,
		Category:    report.Category,
		Status:      report.Status,
		Latitude:    report.Latitude,
		Longitude:   report.Longitude,
		ReporterID:  report.ReporterID,
		Votes:       votes,
	}
}

func reportList(reports []models.Report, total int64, page, pageSize int) *dto.ReportListResponse {
	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, *reportResponse(&reports[i], 0))
	}
	return &dto.ReportListResponse{
		Reports:  items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
