package repository

import (
	"context"

	"fieldreport/internal/model"

	"gorm.io/gorm"
)

// MasterDataRepository serves the branch/area code lists reports are scoped by.
type MasterDataRepository interface {
	ListBranches(ctx context.Context) ([]string, error)
	AddBranch(ctx context.Context, code string) error
	DeleteBranch(ctx context.Context, code string) error
	ListAreas(ctx context.Context) ([]string, error)
	AddArea(ctx context.Context, code string) error
	DeleteArea(ctx context.Context, code string) error
}

type masterDataRepository struct {
	db *gorm.DB
}

func NewMasterDataRepository(db *gorm.DB) MasterDataRepository {
	return &masterDataRepository{db: db}
}

func (r *masterDataRepository) ListBranches(ctx context.Context) ([]string, error) {
	var codes []string
	if err := GetDB(ctx, r.db).Model(&model.Branch{}).Order("code").Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *masterDataRepository) AddBranch(ctx context.Context, code string) error {
	return GetDB(ctx, r.db).Save(&model.Branch{Code: code}).Error
}

func (r *masterDataRepository) DeleteBranch(ctx context.Context, code string) error {
	return GetDB(ctx, r.db).Delete(&model.Branch{Code: code}).Error
}

func (r *masterDataRepository) ListAreas(ctx context.Context) ([]string, error) {
	var codes []string
	if err := GetDB(ctx, r.db).Model(&model.Area{}).Order("code").Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *masterDataRepository) AddArea(ctx context.Context, code string) error {
	return GetDB(ctx, r.db).Save(&model.Area{Code: code}).Error
}

func (r *masterDataRepository) DeleteArea(ctx context.Context, code string) error {
	return GetDB(ctx, r.db).Delete(&model.Area{Code: code}).Error
}
