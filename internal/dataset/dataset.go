// Package dataset moves CRM records in and out of spreadsheets.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/metrics"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/spreadsheet"
	dto "smart-fuel-crm/pkg/models"
)

const (
	Clients    = "clients"
	FollowUps  = "follow-ups"
	POSClients = "pos-clients"
	CallLogs   = "call-logs"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var (
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrUnknownFormat  = errors.New("unknown export format")
)

var (
	clientColumns = []spreadsheet.Column{
		{Field: "company_name", Label: "اسم الشركة"},
		{Field: "contact_person", Label: "الشخص المسؤول"},
		{Field: "phone", Label: "الهاتف"},
		{Field: "email", Label: "البريد الإلكتروني"},
		{Field: "number_of_cars", Label: "عدد السيارات"},
		{Field: "fuel_type", Label: "نوع الوقود"},
		{Field: "status", Label: "الحالة"},
		{Field: "address", Label: "العنوان"},
		{Field: "created_at", Label: "تاريخ الإنشاء"},
	}
	followUpColumns = []spreadsheet.Column{
		{Field: "company_name", Label: "اسم الشركة"},
		{Field: "feedback", Label: "الملاحظات"},
		{Field: "status", Label: "الحالة"},
		{Field: "next_follow_up_date", Label: "تاريخ المتابعة التالية"},
		{Field: "created_at", Label: "تاريخ الإنشاء"},
		{Field: "full_name", Label: "بواسطة"},
	}
	posClientColumns = []spreadsheet.Column{
		{Field: "client_code", Label: "كود العميل"},
		{Field: "client_name", Label: "اسم العميل"},
		{Field: "department", Label: "القسم"},
		{Field: "phone", Label: "رقم التليفون"},
		{Field: "status", Label: "الحالة"},
		{Field: "created_at", Label: "تاريخ الإنشاء"},
	}
	callLogColumns = []spreadsheet.Column{
		{Field: "client_code", Label: "كود العميل"},
		{Field: "client_name", Label: "اسم العميل"},
		{Field: "call_date", Label: "تاريخ المكالمة"},
		{Field: "call_summary", Label: "ملخص المكالمة"},
		{Field: "feedback", Label: "الملاحظات"},
		{Field: "status", Label: "الحالة"},
		{Field: "next_follow_up_date", Label: "تاريخ المتابعة التالية"},
		{Field: "created_at", Label: "تاريخ الإنشاء"},
		{Field: "user_full_name", Label: "بواسطة"},
	}
)

// Names lists the exportable datasets.
func Names() []string {
	return []string{Clients, FollowUps, POSClients, CallLogs}
}

// File describes a written export.
type File struct {
	Name        string
	ContentType string
}

// ParseFormat accepts csv or xlsx; empty means csv.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export writes one dataset. Fleet datasets are scoped to userID; the POS
// datasets are shared by the whole team.
func Export(ctx context.Context, repos *repository.Repositories, userID, name, format string, w io.Writer) (File, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return File{}, err
	}
	file := File{Name: strings.ReplaceAll(name, "-", "_") + "_export." + format}
	if format == FormatCSV {
		file.ContentType = "text/csv; charset=utf-8"
	} else {
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	switch name {
	case Clients:
		rows, err := repos.Clients.List(ctx, userID)
		if err != nil {
			return file, err
		}
		return file, write(w, rows, clientColumns, format, name)
	case FollowUps:
		rows, err := repos.FollowUps.ListAll(ctx, userID)
		if err != nil {
			return file, err
		}
		return file, write(w, rows, followUpColumns, format, name)
	case POSClients:
		rows, err := repos.POSClients.List(ctx)
		if err != nil {
			return file, err
		}
		return file, write(w, rows, posClientColumns, format, name)
	case CallLogs:
		rows, err := repos.CallLogs.ListAll(ctx)
		if err != nil {
			return file, err
		}
		return file, write(w, rows, callLogColumns, format, name)
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

func write[T spreadsheet.Record](w io.Writer, rows []T, cols []spreadsheet.Column, format, sheet string) error {
	if format == FormatXLSX {
		return spreadsheet.WriteXLSX(w, rows, cols, sheet)
	}
	return spreadsheet.WriteCSV(w, rows, cols)
}

// ImportPOSClients reads a POS workbook (.xlsx or .xls, chosen by filename) and
// upserts its rows by client code.
// Imported rows are attributed to userID.
func ImportPOSClients(ctx context.Context, repo *repository.POSClientRepository, r io.ReadSeeker, filename, userID string) (dto.ImportResult, error) {
	parsed, err := spreadsheet.ParseWorkbook(r, filename)
	if err != nil {
		return dto.ImportResult{}, err
	}

	recs := make([]models.POSClient, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		recs = append(recs, models.POSClient{
			UserID:     userID,
			ClientCode: row.ClientCode,
			ClientName: row.ClientName,
			Department: row.Department,
			Phone:      row.Phone,
		})
	}
	up := repo.Upsert(ctx, recs, repository.DefaultUpsertChunk)

	res := dto.ImportResult{
		TotalRows: parsed.TotalRows,
		ValidRows: len(parsed.Rows),
		Upserted:  up.Upserted,
		Failed:    up.Failed,
	}
	metrics.ImportRows.WithLabelValues(metrics.ResultUpserted).Add(float64(res.Upserted))
	metrics.ImportRows.WithLabelValues(metrics.ResultFailed).Add(float64(res.Failed))
	metrics.ImportRows.WithLabelValues(metrics.ResultDropped).Add(float64(res.TotalRows - res.ValidRows))
	logger.Infow("pos clients imported",
		"user_id", userID, "total", res.TotalRows, "valid", res.ValidRows,
		"upserted", res.Upserted, "failed", res.Failed)
	return res, nil
}
