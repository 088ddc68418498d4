package service

import (
	"context"
	"errors"
	"strings"

	"fieldreport/internal/model"
	"fieldreport/internal/repository"

	"github.com/google/uuid"
)

// MasterDataService manages the branch and area code lists that scope users
// and reports. Mutations are admin-only (enforced at the route) and audited.
type MasterDataService interface {
	ListBranches(ctx context.Context) ([]string, error)
	AddBranch(ctx context.Context, actorID uuid.UUID, code string) error
	DeleteBranch(ctx context.Context, actorID uuid.UUID, code string) error
	ListAreas(ctx context.Context) ([]string, error)
	AddArea(ctx context.Context, actorID uuid.UUID, code string) error
	DeleteArea(ctx context.Context, actorID uuid.UUID, code string) error
}

type masterDataService struct {
	repo   repository.MasterDataRepository
	audits repository.AuditRepository
}

func NewMasterDataService(repo repository.MasterDataRepository, audits repository.AuditRepository) MasterDataService {
	return &masterDataService{repo: repo, audits: audits}
}

func (s *masterDataService) ListBranches(ctx context.Context) ([]string, error) {
	return s.repo.ListBranches(ctx)
}

func (s *masterDataService) AddBranch(ctx context.Context, actorID uuid.UUID, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("branch code is required")
	}
	if err := s.repo.AddBranch(ctx, code); err != nil {
		return err
	}
	return s.logAction(ctx, actorID, model.ActionAddBranch, code)
}

func (s *masterDataService) DeleteBranch(ctx context.Context, actorID uuid.UUID, code string) error {
	if err := s.repo.DeleteBranch(ctx, code); err != nil {
		return err
	}
	return s.logAction(ctx, actorID, model.ActionDeleteBranch, code)
}

func (s *masterDataService) ListAreas(ctx context.Context) ([]string, error) {
	return s.repo.ListAreas(ctx)
}

func (s *masterDataService) AddArea(ctx context.Context, actorID uuid.UUID, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("area code is required")
	}
	if err := s.repo.AddArea(ctx, code); err != nil {
		return err
	}
	return s.logAction(ctx, actorID, model.ActionAddArea, code)
}

func (s *masterDataService) DeleteArea(ctx context.Context, actorID uuid.UUID, code string) error {
	if err := s.repo.DeleteArea(ctx, code); err != nil {
		return err
	}
	return s.logAction(ctx, actorID, model.ActionDeleteArea, code)
}

func (s *masterDataService) logAction(ctx context.Context, actorID uuid.UUID, action, code string) error {
	return s.audits.Log(ctx, &model.AuditLog{
		UserID:   &actorID,
		Action:   action,
		EntityID: code,
	})
}
