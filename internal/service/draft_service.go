package service

import (
	"context"
	"fmt"

	"fieldreport/internal/model"
	"fieldreport/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DraftResponse struct {
	Data  model.ReportData `json:"data"`
	Found bool             `json:"found"`
}

// DraftService implements the autosave slot: writes go to the primary store
// and a backup store, reads prefer the primary and fall back to the backup.
// An empty payload is never persisted so a blank form cannot clobber a
// recoverable draft.
type DraftService interface {
	Save(ctx context.Context, userID uuid.UUID, data model.ReportData) error
	Load(ctx context.Context, userID uuid.UUID) (DraftResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type draftService struct {
	primary repository.DraftStore
	backup  repository.DraftStore
	log     *logrus.Logger
}

func NewDraftService(primary, backup repository.DraftStore, log *logrus.Logger) DraftService {
	return &draftService{primary: primary, backup: backup, log: log}
}

func (s *draftService) Save(ctx context.Context, userID uuid.UUID, data model.ReportData) error {
	if data.IsEmpty() {
		// nothing worth keeping; leave whatever is already in the slot alone
		return nil
	}

	primaryErr := s.primary.Save(ctx, userID, data)
	if primaryErr != nil {
		s.log.WithError(primaryErr).WithField("user", userID).Warn("primary draft store write failed")
	}
	if err := s.backup.Save(ctx, userID, data); err != nil {
		s.log.WithError(err).WithField("user", userID).Warn("backup draft store write failed")
		if primaryErr != nil {
			return fmt.Errorf("failed to save draft: %w", primaryErr)
		}
	}
	return nil
}

func (s *draftService) Load(ctx context.Context, userID uuid.UUID) (DraftResponse, error) {
	payload, err := s.primary.Load(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user", userID).Warn("primary draft store read failed")
	}
	if payload == nil {
		payload, err = s.backup.Load(ctx, userID)
		if err != nil {
			// a full outage degrades to "no draft": the user starts fresh
			// instead of being locked out of the form
			s.log.WithError(err).WithField("user", userID).Warn("backup draft store read failed")
			return DraftResponse{Found: false}, nil
		}
	}
	if payload == nil || payload.IsEmpty() {
		return DraftResponse{Found: false}, nil
	}

	// older drafts may predate newer form sections; fill the gaps
	merged := payload.MergeWithDefaults()
	return DraftResponse{Data: merged, Found: true}, nil
}

func (s *draftService) Clear(ctx context.Context, userID uuid.UUID) error {
	primaryErr := s.primary.Clear(ctx, userID)
	backupErr := s.backup.Clear(ctx, userID)
	if primaryErr != nil {
		return fmt.Errorf("failed to clear draft: %w", primaryErr)
	}
	if backupErr != nil {
		return fmt.Errorf("failed to clear draft backup: %w", backupErr)
	}
	return nil
}
