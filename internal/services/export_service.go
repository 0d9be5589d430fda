package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Results"

var exportHeaders = []string{
	"Attempt ID", "User ID", "Full Name", "Email", "Completed At", "Dominant Code", "Recommendation",
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
	log    *ServiceLogger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
		log:    NewServiceLogger(logger, LogConfig{Service: "career", Component: "export"}),
	}
}

// ExportTestResults builds an xlsx workbook with one row per completed
// attempt and one column per score record key.
func (s *exportService) ExportTestResults(ctx context.Context, testID, adminID uint) ([]byte, error) {
	op := s.log.WithOperation(ctx, "export_results", adminID)

	attempts, err := s.completedAttempts(ctx, testID)
	if err != nil {
		op.LogResult(testID, "test", err)
		return nil, err
	}

	data, err := s.writeWorkbook(attempts)
	if err != nil {
		op.LogResult(testID, "test", err)
		return nil, err
	}

	op.LogAudit(AuditEventExport, testID, "test_results", nil, map[string]interface{}{"rows": len(attempts)})
	return data, nil
}

func (s *exportService) completedAttempts(ctx context.Context, testID uint) ([]*models.TestAttempt, error) {
	status := models.AttemptCompleted
	filters := repositories.AttemptFilters{
		Status:    &status,
		Limit:     repositories.MaxLimit,
		SortBy:    "completed_at",
		SortOrder: "asc",
	}

	var all []*models.TestAttempt
	for {
		page, total, err := s.repo.Attempt().ListByTest(ctx, testID, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to list attempts: %w", err)
		}
		all = append(all, page...)
		filters.Offset += len(page)
		if len(page) == 0 || int64(filters.Offset) >= total {
			return all, nil
		}
	}
}

func (s *exportService) writeWorkbook(attempts []*models.TestAttempt) ([]byte, error) {
	records := make([]scoring.Record, len(attempts))
	keySet := make(map[string]struct{})
	for i, a := range attempts {
		record, err := a.DecodeScores()
		if err != nil {
			return nil, fmt.Errorf("failed to decode scores of attempt %d: %w", a.ID, err)
		}
		records[i] = record
		for key := range record {
			keySet[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := append(append([]string{}, exportHeaders...), keys...)
	if err := writeRow(f, 1, toRow(headers)); err != nil {
		return nil, err
	}

	for i, a := range attempts {
		row := []interface{}{a.ID, a.UserID, "", "", "", a.DominantCode, string(a.RecommendationStatus)}
		if a.User != nil {
			row[2] = a.User.FullName
			row[3] = a.User.Email
		}
		if a.CompletedAt != nil {
			row[4] = a.CompletedAt.Format("2006-01-02 15:04:05")
		}
		for _, key := range keys {
			value, err := cellValue(records[i][key])
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s of attempt %d: %w", key, a.ID, err)
			}
			row = append(row, value)
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

// cellValue keeps scalars as they are and JSON-encodes nested values.
func cellValue(v interface{}) (interface{}, error) {
	switch v.(type) {
	case nil:
		return "", nil
	case int, int64, float64, string, bool:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
