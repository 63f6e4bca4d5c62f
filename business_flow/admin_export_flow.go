package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/xuri/excelize/v2"
)

// AdminExportFlow renders platform-wide conversion data for offline review
type AdminExportFlow interface {
	DownloadConversionsExcel(ctx context.Context, principal *Principal, from, to *time.Time) (string, []byte, error)
}

// AdminExportFlowImpl implements the admin export business flow
type AdminExportFlowImpl struct {
	conversionRepo repository.ConversionRepository
}

// NewAdminExportFlow creates a new admin export flow instance
func NewAdminExportFlow(conversionRepo repository.ConversionRepository) AdminExportFlow {
	return &AdminExportFlowImpl{conversionRepo: conversionRepo}
}

func (f *AdminExportFlowImpl) DownloadConversionsExcel(ctx context.Context, principal *Principal, from, to *time.Time) (string, []byte, error) {
	if !principal.IsAdmin() {
		return "", nil, ErrAccessDenied
	}
	if from != nil && to != nil && from.After(*to) {
		return "", nil, ErrStartDateAfterEndDate
	}

	filter := models.ConversionFilter{ConvertedAfter: from, ConvertedBefore: to}
	rows, err := f.conversionRepo.ListWithRelations(ctx, filter, "conversions.converted_at ASC, conversions.id ASC", 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("FETCH_CONVERSIONS_FAILED", "Failed to fetch conversions", err)
	}

	// Create workbook
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "conversions"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"conversion_id", "order_id", "program_code", "program_name", "affiliate_code", "click_id", "conversion_type", "sale_amount", "commission_amount", "status", "ip", "converted_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, r := range rows {
		orderID := ""
		if r.OrderID != nil {
			orderID = *r.OrderID
		}
		record := []string{
			r.ConversionID,
			orderID,
			r.Program.ProgramCode,
			r.Program.ProgramName,
			r.Partnership.AffiliateCode,
			r.Click.ClickID,
			r.ConversionType,
			r.SaleAmount.StringFixed(2),
			r.CommissionAmount.StringFixed(2),
			r.Status.String(),
			r.IPAddress,
			r.ConvertedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	filename := fmt.Sprintf("conversions_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}
