// Package report renders admin reports as spreadsheet workbooks.
package report

import (
	"fmt"
	"time"

	"github.com/villageedu/api/internal/app/models"
	"github.com/xuri/excelize/v2"
)

const (
	contactsSheet = "Contacts"
	summarySheet  = "Summary"

	// XLSXContentType is the MIME type of the generated workbooks
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var contactHeader = []interface{}{
	"Name", "Email", "Mobile", "Category", "Subject", "Message", "Preferred Language", "Submitted At",
}

// ContactSheet is the content of a contact category export
type ContactSheet struct {
	Category    models.ContactCategory
	Contacts    []*models.Contact
	Total       int64
	Hindi       int64
	English     int64
	GeneratedAt time.Time
}

// BuildContactWorkbook writes the contacts and a summary sheet into an XLSX document
func BuildContactWorkbook(data ContactSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), contactsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(contactsSheet, "A1", &contactHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(contactsSheet, "A1", "H1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, c := range data.Contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			c.Name, c.Email, c.Mobile, c.Category.Label(), c.Subject, c.Message,
			string(c.PreferredLanguage), c.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(contactsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write contact row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(contactsSheet, "A", "H", 22)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Category", data.Category.Label()},
		{"Total Contacts", data.Total},
		{"Hindi", data.Hindi},
		{"English", data.English},
		{"Generated At", data.GeneratedAt.Format(time.RFC3339)},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", "A5", bold)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
