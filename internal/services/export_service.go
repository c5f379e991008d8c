package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/trialworks/ediary-service/internal/models"
	"github.com/trialworks/ediary-service/internal/repositories"
)

// ExportFormat selects the entry export encoding.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
)

// ExportResult carries the rendered document plus the metadata the handler
// needs for the download response.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// EntryService serves submitted diary entries to study staff, both as JSON
// listings and as downloadable export documents.
type EntryService interface {
	List(ctx context.Context, projectScope *uint) ([]*models.DiaryEntry, error)
	Export(ctx context.Context, projectScope *uint, format ExportFormat) (*ExportResult, error)
}

type entryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewEntryService(repo repositories.Repository, logger *slog.Logger) EntryService {
	return &entryService{repo: repo, logger: logger}
}

func (s *entryService) List(ctx context.Context, projectScope *uint) ([]*models.DiaryEntry, error) {
	entries, err := s.repo.Entry().List(ctx, projectScope)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

var exportHeader = []string{
	"entry_id", "participant_code", "participant_name",
	"questionnaire", "questionnaire_version", "submitted_at", "answers",
}

func (s *entryService) Export(ctx context.Context, projectScope *uint, format ExportFormat) (*ExportResult, error) {
	entries, err := s.repo.Entry().List(ctx, projectScope)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	rows := make([][]string, 0, len(entries))
	users := map[uint]*models.User{}
	questionnaires := map[uint]*models.Questionnaire{}

	for _, entry := range entries {
		user, ok := users[entry.UserID]
		if !ok {
			user, err = s.repo.User().GetByID(ctx, entry.UserID)
			if err != nil {
				s.logger.Warn("entry references missing user", "entry_id", entry.ID, "user_id", entry.UserID)
				user = &models.User{}
			}
			users[entry.UserID] = user
		}
		questionnaire, ok := questionnaires[entry.QuestionnaireID]
		if !ok {
			questionnaire, err = s.repo.Questionnaire().GetByID(ctx, entry.QuestionnaireID)
			if err != nil {
				questionnaire = &models.Questionnaire{}
			}
			questionnaires[entry.QuestionnaireID] = questionnaire
		}

		code := ""
		if user.ParticipantCode != nil {
			code = *user.ParticipantCode
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			code,
			user.Name,
			questionnaire.Name,
			questionnaire.Version,
			entry.SubmittedAt.UTC().Format(time.RFC3339),
			string(entry.Answers),
		})
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	switch format {
	case FormatCSV:
		data, err := renderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        data,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("diary-entries-%s.csv", stamp),
		}, nil
	case FormatXLSX, "":
		data, err := renderXLSX(rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("diary-entries-%s.xlsx", stamp),
		}, nil
	default:
		return nil, ValidationErrors{*newFieldError("format", "must be xlsx or csv")}
	}
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Entries"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	writeRow := func(rowNum int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
