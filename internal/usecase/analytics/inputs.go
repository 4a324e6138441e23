package analytics

import (
	"context"
	"strings"

	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/ports"
	"vesselwatch/internal/validation"
)

// dateRange validates the caller's dates and returns them normalized.
func (s *Service) dateRange(ctx context.Context, query string, start string, end string) (ports.DateRange, error) {
	if err := validation.Struct(validation.DateRangeInput{StartDate: start, EndDate: end}); err != nil {
		return ports.DateRange{}, s.reject(ctx, query, err)
	}

	startDate, err := domainanalytics.NormalizeDate(start)
	if err != nil {
		return ports.DateRange{}, s.reject(ctx, query, err)
	}
	endDate, err := domainanalytics.NormalizeDate(end)
	if err != nil {
		return ports.DateRange{}, s.reject(ctx, query, err)
	}
	return ports.DateRange{Start: startDate, End: endDate}, nil
}

func (s *Service) reportID(ctx context.Context, query string, reportID string) (string, error) {
	if err := validation.Struct(validation.ReportInput{ReportID: reportID}); err != nil {
		return "", s.reject(ctx, query, err)
	}
	return strings.TrimSpace(reportID), nil
}
