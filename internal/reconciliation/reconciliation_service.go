package reconciliation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/observability"
	reconciliationerrors "github.com/cha0jun/leavey/internal/reconciliation/errors"
	"github.com/cha0jun/leavey/internal/shared/contextutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultWorkingDays = 22
	maxWorkingDays     = 31
	minYear            = 2000
	maxYear            = 9999
)

//go:generate mockgen -source=reconciliation_service.go -destination=mock/reconciliation_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, p domain.Principal, q ReconciliationQuery) (SummaryResponse, error)
	Export(ctx context.Context, p domain.Principal, q ExportQuery) (Export, error)
}

type service struct {
	repo               Repository
	strategy           PeriodStrategy
	defaultWorkingDays int
	tracer             trace.Tracer
	logger             *zap.Logger
}

func NewService(repo Repository, defaultWorkingDays int, logger ...*zap.Logger) Service {
	l := zap.L().Named("reconciliation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconciliation.service")
	}
	if defaultWorkingDays < 0 || defaultWorkingDays > maxWorkingDays {
		defaultWorkingDays = DefaultWorkingDays
	}
	return &service{
		repo:               repo,
		strategy:           StartsWithinMonth,
		defaultWorkingDays: defaultWorkingDays,
		tracer:             otel.Tracer("github.com/cha0jun/leavey/internal/reconciliation"),
		logger:             l,
	}
}

type report struct {
	year, month int
	workingDays int
	rows        []ReportRow
}

func (s *service) Summary(ctx context.Context, p domain.Principal, q ReconciliationQuery) (SummaryResponse, error) {
	rep, err := s.run(ctx, p, q)
	if err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		ReportMonth: fmt.Sprintf("%04d-%02d", rep.year, rep.month),
		WorkingDays: rep.workingDays,
		Attribution: s.strategy.Name(),
		Rows:        make([]ReportRowResponse, len(rep.rows)),
	}
	for i, r := range rep.rows {
		resp.Rows[i] = mapRow(r)
		resp.Totals.ChargeableLeave += r.ChargeableLeave
		resp.Totals.NonChargeableLeave += r.NonChargeableLeave
		resp.Totals.TotalBillableDays += r.TotalBillableDays
	}
	resp.Totals.Contractors = len(rep.rows)
	return resp, nil
}

func (s *service) Export(ctx context.Context, p domain.Principal, q ExportQuery) (Export, error) {
	format := strings.ToLower(strings.TrimSpace(q.Format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return Export{}, reconciliationerrors.ErrInvalidFormat
	}

	rep, err := s.run(ctx, p, q.ReconciliationQuery)
	if err != nil {
		return Export{}, err
	}

	_, span := s.tracer.Start(ctx, "reconciliation.render", trace.WithAttributes(
		attribute.String("report.format", format),
		attribute.Int("report.rows", len(rep.rows)),
	))
	defer span.End()

	var (
		data        []byte
		contentType string
	)
	switch format {
	case FormatXLSX:
		data, err = RenderXLSX(rep.rows)
		contentType = ContentTypeXLSX
	default:
		data, err = RenderCSV(rep.rows)
		contentType = ContentTypeCSV
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		contextutil.GetLogger(ctx, s.logger).Error("render reconciliation failed", zap.String("format", format), zap.Error(err))
		return Export{}, err
	}

	return Export{
		Filename:    ExportFilename(rep.year, rep.month, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// run validates the query, loads one snapshot and computes the rows.
func (s *service) run(ctx context.Context, p domain.Principal, q ReconciliationQuery) (report, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !p.CanProcess() {
		return report{}, reconciliationerrors.ErrFinanceForbidden
	}
	workingDays, err := s.validate(q)
	if err != nil {
		return report{}, err
	}
	var vendorID *string
	if q.VendorID != nil && strings.TrimSpace(*q.VendorID) != "" {
		v := strings.TrimSpace(*q.VendorID)
		vendorID = &v
	}

	ctx, span := s.tracer.Start(ctx, "reconciliation.compute", trace.WithAttributes(
		attribute.Int("report.year", q.Year),
		attribute.Int("report.month", q.Month),
		attribute.Int("report.working_days", workingDays),
		attribute.String("report.attribution", s.strategy.Name()),
	))
	defer span.End()

	start := time.Now()
	period := s.strategy.Window(q.Year, time.Month(q.Month))
	contractors, leaves, err := s.repo.Snapshot(ctx, period, vendorID)
	if err != nil {
		observability.ReconciliationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		log.Error("load reconciliation snapshot failed", zap.Error(err))
		return report{}, err
	}

	rows := Compute(contractors, leaves, workingDays)
	observability.ReconciliationDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("report.rows", len(rows)), attribute.Int("report.leaves", len(leaves)))

	log.Info("reconciliation computed",
		zap.Int("year", q.Year),
		zap.Int("month", q.Month),
		zap.Int("working_days", workingDays),
		zap.Int("contractors", len(contractors)),
		zap.Int("approved_leaves", len(leaves)),
	)
	return report{year: q.Year, month: q.Month, workingDays: workingDays, rows: rows}, nil
}

func (s *service) validate(q ReconciliationQuery) (int, error) {
	if q.Month < 1 || q.Month > 12 {
		return 0, reconciliationerrors.ErrInvalidMonth
	}
	if q.Year < minYear || q.Year > maxYear {
		return 0, reconciliationerrors.ErrInvalidYear
	}
	workingDays := s.defaultWorkingDays
	if q.WorkingDays != nil {
		workingDays = *q.WorkingDays
	}
	if workingDays < 0 || workingDays > maxWorkingDays {
		return 0, reconciliationerrors.ErrInvalidWorkingDays
	}
	return workingDays, nil
}
