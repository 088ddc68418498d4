package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"fieldreport/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DraftStore is one backend of the dual-store autosave protocol: a single
// slot per user holding the latest in-progress payload.
type DraftStore interface {
	Save(ctx context.Context, userID uuid.UUID, payload model.ReportData) error
	Load(ctx context.Context, userID uuid.UUID) (*model.ReportData, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// --- Primary store (database) ---

type gormDraftStore struct {
	db *gorm.DB
}

func NewGormDraftStore(db *gorm.DB) DraftStore {
	return &gormDraftStore{db: db}
}

func (s *gormDraftStore) Save(ctx context.Context, userID uuid.UUID, payload model.ReportData) error {
	draft := model.Draft{UserID: userID, Payload: payload, SavedAt: time.Now()}
	// one slot per user: last write wins
	return GetDB(ctx, s.db).Save(&draft).Error
}

func (s *gormDraftStore) Load(ctx context.Context, userID uuid.UUID) (*model.ReportData, error) {
	var draft model.Draft
	if err := GetDB(ctx, s.db).First(&draft, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft.Payload, nil
}

func (s *gormDraftStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, s.db).Where("user_id = ?", userID).Delete(&model.Draft{}).Error
}

// --- Backup store (in-process) ---

// memoryDraftStore keeps the most recent payload per user in memory so a
// primary-store outage does not lose the current editing session.
type memoryDraftStore struct {
	mu    sync.RWMutex
	slots map[uuid.UUID]model.ReportData
}

func NewMemoryDraftStore() DraftStore {
	return &memoryDraftStore{slots: make(map[uuid.UUID]model.ReportData)}
}

func (s *memoryDraftStore) Save(_ context.Context, userID uuid.UUID, payload model.ReportData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[userID] = payload
	return nil
}

func (s *memoryDraftStore) Load(_ context.Context, userID uuid.UUID) (*model.ReportData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if payload, ok := s.slots[userID]; ok {
		p := payload
		return &p, nil
	}
	return nil, nil
}

func (s *memoryDraftStore) Clear(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, userID)
	return nil
}
