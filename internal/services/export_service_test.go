package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/trialworks/ediary-service/internal/models"
)

func testEntries() []*models.DiaryEntry {
	return []*models.DiaryEntry{
		{
			ID:              31,
			UserID:          4,
			QuestionnaireID: 9,
			ProjectID:       uintp(2),
			SubmittedAt:     time.Date(2026, 8, 30, 9, 15, 0, 0, time.UTC),
			Answers:         datatypes.JSON(`{"1":"no","2":"traveling"}`),
		},
	}
}

func TestEntryService_Export_CSV(t *testing.T) {
	repo := newMockRepository()
	svc := NewEntryService(repo, testLogger())

	repo.entry.On("List", mock.Anything, (*uint)(nil)).Return(testEntries(), nil)
	repo.user.On("GetByID", mock.Anything, uint(4)).Return(testParticipant(), nil)
	repo.questionnaire.On("GetByID", mock.Anything, uint(9)).Return(testRingQuestionnaire(), nil)

	result, err := svc.Export(context.Background(), nil, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.Filename, ".csv")

	records, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "31", records[1][0])
	assert.Equal(t, "ABCD1234", records[1][1])
	assert.Equal(t, "Daily Ring Diary", records[1][3])
	assert.Equal(t, `{"1":"no","2":"traveling"}`, records[1][6])
}

func TestEntryService_Export_XLSX(t *testing.T) {
	repo := newMockRepository()
	svc := NewEntryService(repo, testLogger())

	repo.entry.On("List", mock.Anything, (*uint)(nil)).Return(testEntries(), nil)
	repo.user.On("GetByID", mock.Anything, uint(4)).Return(testParticipant(), nil)
	repo.questionnaire.On("GetByID", mock.Anything, uint(9)).Return(testRingQuestionnaire(), nil)

	result, err := svc.Export(context.Background(), nil, FormatXLSX)
	require.NoError(t, err)
	assert.Contains(t, result.Filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Entries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "entry_id", rows[0][0])
	assert.Equal(t, "31", rows[1][0])
	assert.Equal(t, "ABCD1234", rows[1][1])
}

func TestEntryService_Export_UnknownFormat(t *testing.T) {
	repo := newMockRepository()
	svc := NewEntryService(repo, testLogger())

	repo.entry.On("List", mock.Anything, (*uint)(nil)).Return([]*models.DiaryEntry{}, nil)

	_, err := svc.Export(context.Background(), nil, "pdf")
	assert.True(t, IsValidation(err))
}
