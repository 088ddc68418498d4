package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"fieldreport/internal/model"
	"fieldreport/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDraftStore struct{}

func (failingDraftStore) Save(_ context.Context, _ uuid.UUID, _ model.ReportData) error {
	return errors.New("store down")
}
func (failingDraftStore) Load(_ context.Context, _ uuid.UUID) (*model.ReportData, error) {
	return nil, errors.New("store down")
}
func (failingDraftStore) Clear(_ context.Context, _ uuid.UUID) error {
	return errors.New("store down")
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func namedData(name string) model.ReportData {
	d := model.DefaultReportData()
	d.MemberName = name
	return d
}

func TestDraftRoundTrip(t *testing.T) {
	svc := NewDraftService(repository.NewMemoryDraftStore(), repository.NewMemoryDraftStore(), quietLogger())
	userID := uuid.New()

	require.NoError(t, svc.Save(context.Background(), userID, namedData("Budi")))

	loaded, err := svc.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.Equal(t, "Budi", loaded.Data.MemberName)

	require.NoError(t, svc.Clear(context.Background(), userID))
	loaded, err = svc.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, loaded.Found)
}

func TestDraftSkipsEmptyPayload(t *testing.T) {
	svc := NewDraftService(repository.NewMemoryDraftStore(), repository.NewMemoryDraftStore(), quietLogger())
	userID := uuid.New()

	require.NoError(t, svc.Save(context.Background(), userID, namedData("Budi")))
	// a blank form must not clobber the recoverable draft
	require.NoError(t, svc.Save(context.Background(), userID, model.DefaultReportData()))

	loaded, err := svc.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.Equal(t, "Budi", loaded.Data.MemberName)
}

func TestDraftBackupFallback(t *testing.T) {
	backup := repository.NewMemoryDraftStore()
	svc := NewDraftService(failingDraftStore{}, backup, quietLogger())
	userID := uuid.New()

	// the write survives via the backup store
	require.NoError(t, svc.Save(context.Background(), userID, namedData("Budi")))

	loaded, err := svc.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.Equal(t, "Budi", loaded.Data.MemberName)
}

func TestDraftSaveFailsWhenBothStoresDown(t *testing.T) {
	svc := NewDraftService(failingDraftStore{}, failingDraftStore{}, quietLogger())

	err := svc.Save(context.Background(), uuid.New(), namedData("Budi"))
	assert.Error(t, err)
}

func TestDraftLoadDegradesToNotFoundWhenBothStoresDown(t *testing.T) {
	svc := NewDraftService(failingDraftStore{}, failingDraftStore{}, quietLogger())

	// a full outage reads as "no draft", never an error
	loaded, err := svc.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, loaded.Found)
}

func TestDraftLoadMergesOverDefaults(t *testing.T) {
	primary := repository.NewMemoryDraftStore()
	svc := NewDraftService(primary, repository.NewMemoryDraftStore(), quietLogger())
	userID := uuid.New()

	// simulate a payload saved before newer form sections existed
	require.NoError(t, primary.Save(context.Background(), userID, model.ReportData{MemberName: "Budi"}))

	loaded, err := svc.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.Len(t, loaded.Data.KCSections, 5)
	assert.Len(t, loaded.Data.DocumentSections, 7)
	assert.NotNil(t, loaded.Data.AreaAnalysis)
}
