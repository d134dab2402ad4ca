package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// exportEventAttendanceCSV exports event attendance as CSV.
func exportEventAttendanceCSV(rows []EventAttendanceRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"event_id", "title", "start_time", "status", "capacity", "registered", "attended", "cancelled"}); err != nil {
		return nil, "", "", err
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.EventID),
			r.Title,
			r.StartTime.Format("2006-01-02 15:04:05"),
			r.Status,
			fmt.Sprint(r.Capacity),
			fmt.Sprint(r.Registered),
			fmt.Sprint(r.Attended),
			fmt.Sprint(r.Cancelled),
		}
		if err := w.Write(record); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "event_attendance_report.csv", "text/csv", nil
}

// exportEventAttendanceExcel exports event attendance as Excel.
func exportEventAttendanceExcel(rows []EventAttendanceRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Event Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"event_id", "title", "start_time", "status", "capacity", "registered", "attended", "cancelled"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.EventID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.StartTime.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Capacity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Registered)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Attended)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Cancelled)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "event_attendance_report.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

// exportEventAttendancePDF exports event attendance as PDF.
func exportEventAttendancePDF(rows []EventAttendanceRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Event Attendance Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Title", "Start Time", "Status", "Capacity", "Registered", "Attended", "Cancelled"}
	widths := []float64{15, 75, 40, 28, 25, 30, 28, 28}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.EventID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.StartTime.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprint(r.Capacity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprint(r.Registered), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprint(r.Attended), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, fmt.Sprint(r.Cancelled), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "event_attendance_report.pdf", "application/pdf", nil
}

// exportMembershipRevenueCSV exports membership revenue as CSV.
func exportMembershipRevenueCSV(rows []MembershipRevenueRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"plan_id", "plan_name", "sold", "revenue"}); err != nil {
		return nil, "", "", err
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.PlanID),
			r.PlanName,
			fmt.Sprint(r.Sold),
			fmt.Sprintf("%.2f", r.Revenue),
		}
		if err := w.Write(record); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "membership_revenue_report.csv", "text/csv", nil
}

// exportMembershipRevenueExcel exports membership revenue as Excel.
func exportMembershipRevenueExcel(rows []MembershipRevenueRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Membership Revenue"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"plan_id", "plan_name", "sold", "revenue"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.PlanID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.PlanName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Sold)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Revenue)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "membership_revenue_report.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

// exportMembershipRevenuePDF exports membership revenue as PDF.
func exportMembershipRevenuePDF(rows []MembershipRevenueRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Membership Revenue Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Plan ID", "Plan Name", "Sold", "Revenue"}
	widths := []float64{25, 90, 30, 40}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.PlanID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.PlanName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprint(r.Sold), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", r.Revenue), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "membership_revenue_report.pdf", "application/pdf", nil
}
