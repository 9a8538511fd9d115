package report

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/database/entities"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// PostgresRepository persists reports with GORM.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByReportNo(ctx context.Context, reportNo string) (*domain.Report, error) {
	var entity entities.Report
	err := r.db.WithContext(ctx).Where("report_no = ?", reportNo).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError(ctx, "failed to find report", err, "3a5c7e9b-1d3f-4a5c-9e7b-0d2f4a6c8e01")
	}
	return mapEntity(entity), nil
}

func (r *PostgresRepository) ExistsReportNo(ctx context.Context, reportNo string) (bool, error) {
	return r.exists(ctx, "report_no = ?", reportNo)
}

func (r *PostgresRepository) ExistsStyleNumber(ctx context.Context, styleNumber string) (bool, error) {
	return r.exists(ctx, "style_number = ?", styleNumber)
}

func (r *PostgresRepository) LogoInUse(ctx context.Context, logo, exceptReportNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Report{}).
		Where("company_logo = ? AND report_no <> ?", logo, exceptReportNo).
		Limit(1).Count(&count).Error
	if err != nil {
		return false, dbError(ctx, "failed to check logo references", err, "6d8f0b2c-4a6c-4d8e-b1a3-3c5d7e9f1b34")
	}
	return count > 0, nil
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Report{}).Where(query, arg).Limit(1).Count(&count).Error
	if err != nil {
		return false, dbError(ctx, "failed to check report existence", err, "4b6d8fa0-2e4a-4b6d-af8c-1e3a5b7d9f12")
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rep *domain.Report) error {
	entity := toEntity(rep)
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict(ctx, err)
		}
		return dbError(ctx, "failed to create report", err, "5c7e9ab1-3f5b-4c7e-b09d-2f4b6c8e0a23")
	}
	rep.CreatedAt = entity.CreatedAt
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, rep *domain.Report) error {
	entity := toEntity(rep)
	res := r.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("report_no = ?", rep.ReportNo).
		Select("*").
		Omit("id", "report_no", "created_at").
		Updates(&entity)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return conflict(ctx, res.Error)
		}
		return dbError(ctx, "failed to update report", res.Error, "6d8fabc2-4a6c-4d8f-81ae-3a5c7d9f1b34")
	}
	if res.RowsAffected == 0 {
		return notFound(ctx)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, reportNo string) error {
	res := r.db.WithContext(ctx).Where("report_no = ?", reportNo).Delete(&entities.Report{})
	if res.Error != nil {
		return dbError(ctx, "failed to delete report", res.Error, "7e9abcd3-5b7d-4e9a-92bf-4b6d8eaf2c45")
	}
	if res.RowsAffected == 0 {
		return notFound(ctx)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Report{})
	if filter.Query != "" {
		query = query.Where("report_no ILIKE ?", "%"+filter.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(ctx, "failed to count reports", err, "8fabcde4-6c8e-4fab-a3c0-5c7e9fb03d56")
	}

	var rows []entities.Report
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Size).
		Limit(filter.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, dbError(ctx, "failed to list reports", err, "9abcdef5-7d9f-4abc-b4d1-6d8fa0c14e67")
	}
	return mapEntities(rows), total, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Report, error) {
	var rows []entities.Report
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, dbError(ctx, "failed to list reports", err, "abcdef06-8eaf-4bcd-85e2-7e9fb1d25f78")
	}
	return mapEntities(rows), nil
}

func (r *PostgresRepository) RecordUploadedPDF(ctx context.Context, reportNo, filename string) error {
	entry := entities.UploadedPDF{ReportNo: reportNo, Filename: filename}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return dbError(ctx, "failed to log uploaded pdf", err, "bcdef017-9fb0-4cde-96f3-8fa0c2e36089")
	}
	return nil
}

func toEntity(rep *domain.Report) entities.Report {
	return entities.Report{
		ReportNo:      rep.ReportNo,
		Description:   rep.Description,
		ShapeAndCut:   rep.ShapeAndCut,
		TotEstWeight:  rep.TotEstWeight,
		Color:         rep.Color,
		Clarity:       rep.Clarity,
		StyleNumber:   rep.StyleNumber,
		ImageFilename: rep.ImageFilename,
		Comment:       rep.Comment,
		Isecopy:       rep.Isecopy,
		CompanyLogo:   rep.CompanyLogo,
		NoticeImage:   rep.NoticeImage,
		IgiLogo:       rep.IgiLogo,
	}
}

func mapEntity(entity entities.Report) *domain.Report {
	return &domain.Report{
		ReportNo:      entity.ReportNo,
		Description:   entity.Description,
		ShapeAndCut:   entity.ShapeAndCut,
		TotEstWeight:  entity.TotEstWeight,
		Color:         entity.Color,
		Clarity:       entity.Clarity,
		StyleNumber:   entity.StyleNumber,
		ImageFilename: entity.ImageFilename,
		Comment:       entity.Comment,
		CompanyLogo:   entity.CompanyLogo,
		NoticeImage:   entity.NoticeImage,
		Isecopy:       entity.Isecopy,
		IgiLogo:       entity.IgiLogo,
		CreatedAt:     entity.CreatedAt,
	}
}

func mapEntities(rows []entities.Report) []*domain.Report {
	out := make([]*domain.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEntity(row))
	}
	return out
}

func dbError(ctx context.Context, message string, err error, uuid string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, message, err, uuid)
}

func conflict(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
		"report number or style number already exists", err, "cdef0128-a0c1-4def-a704-9ab1d3f4719a")
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"Report not found", nil, "def01239-b1d2-4ef0-b815-abc2e4058aab")
}
