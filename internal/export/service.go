// Package export produces XLSX listings of stored contracts for back-office
// review.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/repository"
)

// Service is a tiny façade over the repository that produces XLSX bytes.
type Service struct {
	repo   repository.ContractRepository
	logger *slog.Logger
}

func NewService(repo repository.ContractRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportContractsXLSX returns a workbook listing every stored contract with
// its effective status and field gaps.
func (s *Service) ExportContractsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Contracts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Name",
		"Status",
		"Partners",
		"Company Name",
		"Missing Fields",
		"Created",
		"Updated",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		status := contract.EffectiveStatus(*r)
		_, missing := contract.IsComplete(*r)

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Name)
		write(2, string(status))
		write(3, len(r.Partners))
		write(4, r.CompanyData.CompanyName)
		write(5, truncate(joinMarkers(missing), 140))
		write(6, r.CreatedAt.Format("2006-01-02"))
		write(7, r.UpdatedAt.Format("2006-01-02"))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 24) // name
	_ = f.SetColWidth(sheet, "B", "B", 12) // status
	_ = f.SetColWidth(sheet, "D", "D", 32) // company
	_ = f.SetColWidth(sheet, "E", "E", 48) // missing
	_ = f.SetColWidth(sheet, "F", "G", 12) // dates

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func joinMarkers(markers []string) string {
	out := ""
	for i, m := range markers {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
