package reports

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

// Source is the owner report API.
type Source interface {
	RevenueReport(ctx context.Context, f models.ReportFilter) (*models.RevenueReport, error)
	ClientsReport(ctx context.Context, f models.ReportFilter) (*models.ClientsReport, error)
	ServicesReport(ctx context.Context, f models.ReportFilter) ([]models.ServiceUsage, error)
}

type Summary struct {
	Filter       models.ReportFilter   `json:"filter"`
	TotalRevenue int                   `json:"total_revenue"`
	TotalClients int                   `json:"total_clients"`
	Services     []models.ServiceUsage `json:"services"`
}

// Build collects the three owner reports for one filter. Services are sorted
// by booking count, most booked first.
func Build(ctx context.Context, src Source, f models.ReportFilter) (*Summary, error) {
	revenue, err := src.RevenueReport(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("revenue report: %w", err)
	}
	clients, err := src.ClientsReport(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("clients report: %w", err)
	}
	services, err := src.ServicesReport(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("services report: %w", err)
	}

	sort.SliceStable(services, func(i, j int) bool {
		return services[i].BookingCount > services[j].BookingCount
	})

	return &Summary{
		Filter:       f,
		TotalRevenue: revenue.TotalRevenue,
		TotalClients: clients.TotalClients,
		Services:     services,
	}, nil
}

const sheetName = "Report"

// ExportXLSX renders s as a one-sheet workbook.
func ExportXLSX(s *Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	period := "all time"
	if s.Filter.StartDate != "" || s.Filter.EndDate != "" {
		period = fmt.Sprintf("%s - %s", orDash(s.Filter.StartDate), orDash(s.Filter.EndDate))
	}

	rows := [][]any{
		{"Period", period},
		{"Total revenue", s.TotalRevenue},
		{"Total clients", s.TotalClients},
		{},
		{"Service", "Bookings"},
	}
	for _, svc := range s.Services {
		rows = append(rows, []any{svc.Name, svc.BookingCount})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("error creating style: %w", err)
	}
	for _, r := range [][2]string{{"A1", "A3"}, {"A5", "B5"}} {
		if err := f.SetCellStyle(sheetName, r[0], r[1], bold); err != nil {
			return nil, fmt.Errorf("error styling %s:%s: %w", r[0], r[1], err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 30); err != nil {
		return nil, fmt.Errorf("error sizing column A: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 20); err != nil {
		return nil, fmt.Errorf("error sizing column B: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}

// FileName is the download name for a report with filter f.
func FileName(f models.ReportFilter) string {
	if f.StartDate == "" && f.EndDate == "" {
		return "report.xlsx"
	}
	return fmt.Sprintf("report_%s_to_%s.xlsx", orDash(f.StartDate), orDash(f.EndDate))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
