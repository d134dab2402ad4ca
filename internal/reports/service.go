package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Service interface {
	EventAttendance(ctx context.Context, f ReportFilters, accessContext middleware.AccessContext) ([]EventAttendanceRow, error)
	MembershipRevenue(ctx context.Context, f ReportFilters, accessContext middleware.AccessContext) ([]MembershipRevenueRow, error)
	Export(ctx context.Context, report string, f ReportFilters, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) EventAttendance(ctx context.Context, f ReportFilters, accessContext middleware.AccessContext) ([]EventAttendanceRow, error) {
	if !accessContext.CanAccessGym(f.GymID) {
		return nil, errors.New("access denied to this gym")
	}
	return s.repo.EventAttendance(ctx, f)
}

func (s *service) MembershipRevenue(ctx context.Context, f ReportFilters, accessContext middleware.AccessContext) ([]MembershipRevenueRow, error) {
	if !accessContext.CanAccessGym(f.GymID) {
		return nil, errors.New("access denied to this gym")
	}
	return s.repo.MembershipRevenue(ctx, f)
}

// Export renders a report in the requested format and audits the download.
func (s *service) Export(ctx context.Context, report string, f ReportFilters, format string, accessContext middleware.AccessContext, ip string) ([]byte, string, string, error) {
	if !accessContext.CanAccessGym(f.GymID) {
		return nil, "", "", errors.New("access denied to this gym")
	}

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch report {
	case "event-attendance":
		var rows []EventAttendanceRow
		rows, err = s.repo.EventAttendance(ctx, f)
		if err != nil {
			break
		}
		switch format {
		case FormatCSV:
			data, filename, contentType, err = exportEventAttendanceCSV(rows)
		case FormatExcel:
			data, filename, contentType, err = exportEventAttendanceExcel(rows)
		case FormatPDF:
			data, filename, contentType, err = exportEventAttendancePDF(rows)
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}
	case "membership-revenue":
		var rows []MembershipRevenueRow
		rows, err = s.repo.MembershipRevenue(ctx, f)
		if err != nil {
			break
		}
		switch format {
		case FormatCSV:
			data, filename, contentType, err = exportMembershipRevenueCSV(rows)
		case FormatExcel:
			data, filename, contentType, err = exportMembershipRevenueExcel(rows)
		case FormatPDF:
			data, filename, contentType, err = exportMembershipRevenuePDF(rows)
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}
	default:
		err = fmt.Errorf("unknown report: %s", report)
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	gymID := f.GymID
	s.auditSvc.LogAction(ctx, &accessContext.UserID, &gymID, "REPORT_EXPORTED", map[string]interface{}{
		"report": report,
		"format": format,
	}, ip, status)

	return data, filename, contentType, err
}
