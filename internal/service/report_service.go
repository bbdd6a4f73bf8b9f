package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
	"github.com/noah-isme/bank-sampah-api/pkg/export"
)

// ReportFormat identifies a supported export encoding.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

type reportDepositLister interface {
	List(ctx context.Context, filter models.DepositFilter) ([]models.DepositDetail, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportFile is a rendered export ready to stream to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService renders the deposit log as downloadable files.
type ReportService struct {
	deposits reportDepositLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(deposits reportDepositLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{deposits: deposits, csv: csv, pdf: pdf, logger: logger}
}

// Deposits exports the deposit log in the requested format.
func (s *ReportService) Deposits(ctx context.Context, filter models.DepositFilter, format ReportFormat) (*ReportFile, error) {
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	// The export ignores pagination and pulls the full filtered log.
	filter.Page = 1
	filter.PageSize = 100
	var details []models.DepositDetail
	for {
		page, total, err := s.deposits.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deposits")
		}
		details = append(details, page...)
		if len(details) >= total || len(page) == 0 {
			break
		}
		filter.Page++
	}

	dataset := buildDepositDataset(details)
	stamp := time.Now().UTC().Format("20060102-150405")

	switch format {
	case ReportFormatPDF:
		data, err := s.pdf.Render(dataset, "Laporan Setoran Bank Sampah")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("laporan-setoran-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("laporan-setoran-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}
}

func buildDepositDataset(details []models.DepositDetail) export.Dataset {
	headers := []string{"Tanggal", "NIS", "Nama", "Jenis Sampah", "Botol", "Trashbag", "Berat (kg)", "Nilai (Rp)"}
	rows := make([]map[string]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, map[string]string{
			"Tanggal":      d.CreatedAt.Format("2006-01-02"),
			"NIS":          d.StudentNIS,
			"Nama":         d.StudentName,
			"Jenis Sampah": d.WasteTypeName,
			"Botol":        strconv.Itoa(d.BottleCount),
			"Trashbag":     strconv.Itoa(d.TrashbagReward),
			"Berat (kg)":   strconv.FormatFloat(d.Weight, 'f', 2, 64),
			"Nilai (Rp)":   strconv.FormatFloat(d.TotalValue, 'f', 0, 64),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
