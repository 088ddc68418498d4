package repository

import (
	"context"
	"errors"

	"fieldreport/internal/model"
	"fieldreport/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRepository is the persistence collaborator of the lifecycle machine.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	ListAll(ctx context.Context) ([]model.Report, error)
	ListByStatus(ctx context.Context, status string) ([]model.Report, error)
	Save(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return GetDB(ctx, r.db).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := GetDB(ctx, r.db).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	if err := GetDB(ctx, r.db).Order("updated_at DESC, id").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status string) ([]model.Report, error) {
	var reports []model.Report
	if err := GetDB(ctx, r.db).Where("status = ?", status).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Save(ctx context.Context, report *model.Report) error {
	return GetDB(ctx, r.db).Save(report).Error
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Report{}).Error
}
