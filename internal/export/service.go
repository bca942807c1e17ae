package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
	"github.com/sarabun-dev/sarabun-core/internal/core/ports"
)

// Service renders the document register as an XLSX workbook, one row per
// document in registry order.
type Service struct {
	repo   ports.DocumentRepository
	logger *slog.Logger
}

func NewService(repo ports.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

var registerHeaders = []string{
	"เลขที่หนังสือ",
	"วันที่",
	"เรื่อง",
	"จาก",
	"ถึง",
	"ประเภท",
	"ความเร่งด่วน",
	"สถานะ",
	"ผู้ดำเนินการ",
	"รับเข้าเมื่อ",
}

func (s *Service) RegisterXLSX(ctx context.Context, filter domain.ListFilter) ([]byte, error) {
	start := time.Now()

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Register"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, doc := range records {
		row := rowIdx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, doc.DocumentNumber)
		write(2, doc.DocumentDate)
		write(3, doc.Title)
		write(4, doc.FromParty)
		write(5, doc.ToParty)
		write(6, string(doc.Direction))
		write(7, string(doc.Priority))
		write(8, string(doc.Status))
		write(9, doc.CompletedBy)
		write(10, doc.CreatedAt.Format("2006-01-02 15:04"))
	}

	_ = f.SetColWidth(sheet, "A", "B", 16)
	_ = f.SetColWidth(sheet, "C", "C", 48)
	_ = f.SetColWidth(sheet, "D", "E", 28)
	_ = f.SetColWidth(sheet, "F", "I", 14)
	_ = f.SetColWidth(sheet, "J", "J", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("register export built",
		slog.Int("rows", len(records)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
	return buf.Bytes(), nil
}
