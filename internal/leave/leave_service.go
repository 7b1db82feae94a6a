package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/events"
	leaveerrors "github.com/cha0jun/leavey/internal/leave/errors"
	"github.com/cha0jun/leavey/internal/messaging/kafka"
	"github.com/cha0jun/leavey/internal/observability"
	"github.com/cha0jun/leavey/internal/shared/contextutil"
	"github.com/cha0jun/leavey/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultSyncTimeout = 5 * time.Second

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p domain.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	SelfEdit(ctx context.Context, p domain.Principal, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Process(ctx context.Context, p domain.Principal, id string, target string) (LeaveResponse, error)
	Cancel(ctx context.Context, p domain.Principal, id string) (LeaveResponse, error)
	RetrySync(ctx context.Context, p domain.Principal, id string) (LeaveResponse, error)
	GetAll(ctx context.Context, p domain.Principal, q ListLeavesQuery) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, p domain.Principal, id string) (LeaveResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counter     counter.Repository
	recorder    audit.Recorder
	adapter     SyncAdapter
	outbox      kafka.OutboxRepository
	syncTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewService builds the workflow without an outbox; status change events are
// then not published.
func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	recorder audit.Recorder,
	adapter SyncAdapter,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, recorder, adapter, nil, DefaultSyncTimeout, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	recorder audit.Recorder,
	adapter SyncAdapter,
	outbox kafka.OutboxRepository,
	syncTimeout time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if syncTimeout <= 0 {
		syncTimeout = DefaultSyncTimeout
	}
	return &service{
		db:          db,
		repo:        repo,
		counter:     counterRepo,
		recorder:    recorder,
		adapter:     adapter,
		outbox:      outbox,
		syncTimeout: syncTimeout,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, p domain.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave", zap.String("user_id", p.UserID.String()))

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCategoryID
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := validateTotalDays(start, end, req.TotalDays); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	category, err := qrepo.FindCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrCategoryNotFound
		}
		log.Error("load category failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeLeaveRequest)
	if err != nil {
		log.Error("allocate reference failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	now := s.now().UTC()
	l := &LeaveRequest{
		ID:                     uuid.New(),
		ReferenceNo:            counter.FormatLeaveReference(seq),
		UserID:                 p.UserID,
		CategoryID:             category.ID,
		StartDate:              start,
		EndDate:                end,
		TotalDays:              req.TotalDays,
		Reason:                 strings.TrimSpace(req.Reason),
		AttachmentURL:          trimmedOrNil(req.AttachmentURL),
		Status:                 StatusPending,
		CachedChargeableStatus: category.IsChargeable,
		ExternalSyncStatus:     SyncNotSynced,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := qrepo.Create(ctx, l); err != nil {
		log.Error("insert leave failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := rec.Record(ctx, audit.Entry{
		LeaveRequestID: &l.ID,
		ActorID:        p.UserID,
		Action:         audit.ActionCreate,
		NewValue:       StatusPending,
	}); err != nil {
		log.Error("audit leave create failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit leave create failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave created",
		zap.String("leave_id", l.ID.String()),
		zap.String("reference_no", l.ReferenceNo),
		zap.Bool("chargeable", l.CachedChargeableStatus),
	)
	l.Category = category
	return mapToResponse(*l), nil
}

// SelfEdit lets the owner correct a pending request. The chargeable snapshot
// is left as captured at creation even when the category changes.
func (s *service) SelfEdit(ctx context.Context, p domain.Principal, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if req.IsEmpty() {
		return LeaveResponse{}, leaveerrors.ErrEmptyPatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	l, err := s.lockForUpdate(ctx, qrepo, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.UserID != p.UserID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	updates := map[string]any{}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidCategoryID
		}
		if categoryID != l.CategoryID {
			category, err := qrepo.FindCategory(ctx, categoryID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return LeaveResponse{}, leaveerrors.ErrCategoryNotFound
				}
				return LeaveResponse{}, err
			}
			l.CategoryID = categoryID
			l.Category = category
			updates["category_id"] = categoryID
		}
	}

	start, end := l.StartDate, l.EndDate
	if req.StartDate != nil {
		if start, err = parseDate(*req.StartDate); err != nil {
			return LeaveResponse{}, err
		}
	}
	if req.EndDate != nil {
		if end, err = parseDate(*req.EndDate); err != nil {
			return LeaveResponse{}, err
		}
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	total := l.TotalDays
	if req.TotalDays != nil {
		total = *req.TotalDays
	}
	if err := validateTotalDays(start, end, total); err != nil {
		return LeaveResponse{}, err
	}
	if !start.Equal(l.StartDate) {
		l.StartDate = start
		updates["start_date"] = start
	}
	if !end.Equal(l.EndDate) {
		l.EndDate = end
		updates["end_date"] = end
	}
	if total != l.TotalDays {
		l.TotalDays = total
		updates["total_days"] = total
	}
	if req.Reason != nil {
		if reason := strings.TrimSpace(*req.Reason); reason != l.Reason {
			l.Reason = reason
			updates["reason"] = reason
		}
	}
	if req.AttachmentURL != nil {
		next := trimmedOrNil(req.AttachmentURL)
		if !equalStringPtr(next, l.AttachmentURL) {
			l.AttachmentURL = next
			updates["attachment_url"] = next
		}
	}

	if l.Category == nil {
		category, err := qrepo.FindCategory(ctx, l.CategoryID)
		if err != nil {
			log.Error("load leave category failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
			return LeaveResponse{}, err
		}
		l.Category = category
	}

	if len(updates) == 0 {
		return mapToResponse(*l), nil
	}

	ok, err := qrepo.UpdateDetailsIfPending(ctx, l.ID, updates)
	if err != nil {
		log.Error("update leave details failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	if err := rec.Record(ctx, audit.Entry{
		LeaveRequestID: &l.ID,
		ActorID:        p.UserID,
		Action:         audit.ActionUpdate,
		FieldChanged:   "details",
		NewValue:       changedFields(updates),
	}); err != nil {
		log.Error("audit leave edit failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit leave edit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave edited", zap.String("leave_id", l.ID.String()), zap.Int("fields", len(updates)))
	l.UpdatedAt = s.now().UTC()
	return mapToResponse(*l), nil
}

// Process approves or rejects a pending request. The row is locked and the
// write is guarded on PENDING, so of two concurrent deciders exactly one
// commits and only the winner calls the vendor.
func (s *service) Process(ctx context.Context, p domain.Principal, id string, target string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !p.CanProcess() {
		return LeaveResponse{}, leaveerrors.ErrProcessForbidden
	}
	next := Status(strings.ToUpper(strings.TrimSpace(target)))
	switch next {
	case StatusApproved, StatusRejected:
	case StatusPending:
		return LeaveResponse{}, leaveerrors.ErrTargetStatusPending
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidTargetStatus
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	l, err := s.lockForUpdate(ctx, qrepo, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	now := s.now().UTC()
	from := l.Status
	l.Status = next
	l.ProcessedBy = &p.UserID
	l.UpdatedAt = now
	if next == StatusApproved {
		l.ApprovedAt = &now
	}

	ok, err := qrepo.TransitionStatus(ctx, l, from)
	if err != nil {
		log.Error("transition leave failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		log.Warn("leave transition lost race", zap.String("leave_id", l.ID.String()))
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	if next == StatusApproved {
		if err := s.sync(ctx, qrepo, l, p.UserID, log); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := rec.Record(ctx, audit.Entry{
		LeaveRequestID: &l.ID,
		ActorID:        p.UserID,
		Action:         audit.ActionUpdate,
		FieldChanged:   "status",
		OldValue:       from,
		NewValue:       next,
	}); err != nil {
		log.Error("audit leave process failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueueStatusChanged(ctx, tx, l, p.UserID, from); err != nil {
		log.Error("enqueue status event failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit leave process failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	observability.LeaveTransitions.WithLabelValues(string(from), string(next)).Inc()
	log.Info("leave processed",
		zap.String("leave_id", l.ID.String()),
		zap.String("status", string(next)),
		zap.String("external_sync_status", string(l.ExternalSyncStatus)),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, p domain.Principal, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	l, err := s.lockForUpdate(ctx, qrepo, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.UserID != p.UserID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	from := l.Status
	l.Status = StatusCancelled
	l.UpdatedAt = s.now().UTC()

	ok, err := qrepo.TransitionStatus(ctx, l, from)
	if err != nil {
		log.Error("cancel leave failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	if err := rec.Record(ctx, audit.Entry{
		LeaveRequestID: &l.ID,
		ActorID:        p.UserID,
		Action:         audit.ActionUpdate,
		FieldChanged:   "status",
		OldValue:       from,
		NewValue:       StatusCancelled,
	}); err != nil {
		log.Error("audit leave cancel failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueueStatusChanged(ctx, tx, l, p.UserID, from); err != nil {
		log.Error("enqueue status event failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit leave cancel failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	observability.LeaveTransitions.WithLabelValues(string(from), string(StatusCancelled)).Inc()
	log.Info("leave cancelled", zap.String("leave_id", l.ID.String()))
	return mapToResponse(*l), nil
}

// RetrySync calls the vendor again for an approved request that has not
// synced yet. A failed retry is still a successful call: the state is
// written as ERROR and the caller can try later.
func (s *service) RetrySync(ctx context.Context, p domain.Principal, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !p.IsAdmin() && !p.IsSystem() {
		return LeaveResponse{}, leaveerrors.ErrLeaveForbidden
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	l, err := s.lockForUpdate(ctx, qrepo, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusApproved {
		return LeaveResponse{}, leaveerrors.ErrNotApproved
	}
	if l.ExternalSyncStatus == SyncSynced {
		return LeaveResponse{}, leaveerrors.ErrAlreadySynced
	}

	previous := l.ExternalSyncStatus
	approver := p.UserID
	if l.ProcessedBy != nil {
		approver = *l.ProcessedBy
	}
	if err := s.sync(ctx, qrepo, l, approver, log); err != nil {
		return LeaveResponse{}, err
	}

	if err := rec.Record(ctx, audit.Entry{
		LeaveRequestID: &l.ID,
		ActorID:        p.UserID,
		Action:         audit.ActionUpdate,
		FieldChanged:   "external_sync_status",
		OldValue:       previous,
		NewValue:       l.ExternalSyncStatus,
	}); err != nil {
		log.Error("audit sync retry failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueueStatusChanged(ctx, tx, l, p.UserID, l.Status); err != nil {
		log.Error("enqueue status event failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit sync retry failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("vendor sync retried",
		zap.String("leave_id", l.ID.String()),
		zap.String("external_sync_status", string(l.ExternalSyncStatus)),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, p domain.Principal, q ListLeavesQuery) ([]LeaveResponse, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	f := Filter{Offset: q.Offset, Limit: q.Limit}
	if q.Status != "" {
		st := Status(strings.ToUpper(q.Status))
		if !st.Valid() {
			return nil, 0, leaveerrors.ErrInvalidStatusFilter
		}
		f.Status = &st
	}

	if !p.CanProcess() || q.Mine {
		self := p.UserID
		f.UserID = &self
	} else {
		if q.UserID != "" {
			uid, err := uuid.Parse(q.UserID)
			if err != nil {
				return nil, 0, leaveerrors.ErrInvalidFilterID
			}
			f.UserID = &uid
		}
		if q.ManagerID != "" {
			mid, err := uuid.Parse(q.ManagerID)
			if err != nil {
				return nil, 0, leaveerrors.ErrInvalidFilterID
			}
			f.ManagerID = &mid
		}
		if dept := strings.TrimSpace(q.Department); dept != "" {
			f.Department = &dept
		}
	}

	leaves, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		log.Error("list leaves failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, p domain.Principal, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("load leave failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !p.CanView(l.UserID) {
		return LeaveResponse{}, leaveerrors.ErrLeaveForbidden
	}
	return mapToResponse(*l), nil
}

func (s *service) lockForUpdate(ctx context.Context, repo Repository, id uuid.UUID) (*LeaveRequest, error) {
	l, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("lock leave failed", zap.String("leave_id", id.String()), zap.Error(err))
		return nil, err
	}
	return l, nil
}

// sync calls the vendor once and persists the outcome on l. Only store
// errors are returned; vendor failures end up as SyncError.
func (s *service) sync(ctx context.Context, repo Repository, l *LeaveRequest, approver uuid.UUID, log *zap.Logger) error {
	owner, err := repo.FindOwner(ctx, l.UserID)
	if err != nil {
		log.Error("load leave owner failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	category, err := repo.FindCategory(ctx, l.CategoryID)
	if err != nil {
		log.Error("load leave category failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}

	approvedAt := s.now().UTC()
	if l.ApprovedAt != nil {
		approvedAt = *l.ApprovedAt
	}
	req := SyncRequest{
		LeaveID:        l.ID.String(),
		ReferenceNo:    l.ReferenceNo,
		UserID:         owner.ID.String(),
		ExternalUserID: owner.ExternalID,
		Email:          owner.Email,
		VendorID:       owner.VendorID,
		CategoryName:   category.Name,
		StartDate:      l.StartDate.Format(DateLayout),
		EndDate:        l.EndDate.Format(DateLayout),
		TotalDays:      l.TotalDays,
		Chargeable:     l.CachedChargeableStatus,
		ApprovedAt:     approvedAt,
		ApprovedBy:     approver.String(),
	}

	status, ref := s.syncApproved(ctx, l, req, log)
	if err := repo.UpdateSyncState(ctx, l.ID, status, ref); err != nil {
		log.Error("persist sync state failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	l.ExternalSyncStatus = status
	if ref != nil {
		l.ExternalReferenceID = ref
	}
	l.User = owner
	l.Category = category
	return nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, l *LeaveRequest, actor uuid.UUID, from Status) error {
	if s.outbox == nil {
		return nil
	}
	now := s.now().UTC()
	payload, err := json.Marshal(events.LeaveStatusChangedEvent{
		EventType:          events.LeaveStatusChangedEventType,
		LeaveID:            l.ID.String(),
		ReferenceNo:        l.ReferenceNo,
		UserID:             l.UserID.String(),
		ActorID:            actor.String(),
		FromStatus:         string(from),
		ToStatus:           string(l.Status),
		ExternalSyncStatus: string(l.ExternalSyncStatus),
		OccurredAt:         now,
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.LeaveAggregateType,
		AggregateID:   l.ID.String(),
		EventType:     events.LeaveStatusChangedEventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.UTC)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

// validateTotalDays accepts half day steps up to the number of calendar days
// in the range.
func validateTotalDays(start, end time.Time, total float64) error {
	if total <= 0 || math.Mod(total*2, 1) != 0 {
		return leaveerrors.ErrInvalidTotalDays
	}
	span := end.Sub(start).Hours()/24 + 1
	if total > span {
		return leaveerrors.ErrInvalidTotalDays
	}
	return nil
}

func changedFields(updates map[string]any) string {
	fields := make([]string, 0, len(updates))
	for k := range updates {
		if k == "updated_at" {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return strings.Join(fields, ",")
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                     l.ID.String(),
		ReferenceNo:            l.ReferenceNo,
		UserID:                 l.UserID.String(),
		CategoryID:             l.CategoryID.String(),
		StartDate:              l.StartDate.Format(DateLayout),
		EndDate:                l.EndDate.Format(DateLayout),
		TotalDays:              l.TotalDays,
		Reason:                 l.Reason,
		AttachmentURL:          l.AttachmentURL,
		Status:                 string(l.Status),
		CachedChargeableStatus: l.CachedChargeableStatus,
		ExternalSyncStatus:     string(l.ExternalSyncStatus),
		ExternalReferenceID:    l.ExternalReferenceID,
		CreatedAt:              l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.ProcessedBy != nil {
		v := l.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.User != nil {
		resp.User = &LeaveOwnerResponse{
			ID:       l.User.ID.String(),
			FullName: l.User.FullName,
			Email:    l.User.Email,
			VendorID: l.User.VendorID,
		}
	}
	if l.Category != nil {
		resp.Category = &LeaveCategoryResponse{
			ID:           l.Category.ID.String(),
			Name:         l.Category.Name,
			IsChargeable: l.Category.IsChargeable,
		}
	}
	return resp
}
