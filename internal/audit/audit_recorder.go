package audit

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Entry describes one change. OldValue and NewValue may hold any type; the
// recorder owns their conversion to text.
type Entry struct {
	LeaveRequestID *uuid.UUID
	ActorID        uuid.UUID
	Action         Action
	FieldChanged   string
	OldValue       any
	NewValue       any
}

// Recorder appends audit entries inside a transaction owned by the caller.
// It never begins, commits or rolls back, and returns persist errors as is so
// the caller's transaction fails with them.
//
//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	WithTx(tx *sql.Tx) Recorder
	Record(ctx context.Context, e Entry) error
}

type recorder struct {
	repo Repository
	now  func() time.Time
}

func NewRecorder(repo Repository) Recorder {
	return &recorder{repo: repo, now: time.Now}
}

func (r *recorder) WithTx(tx *sql.Tx) Recorder {
	return &recorder{repo: r.repo.WithTx(tx), now: r.now}
}

func (r *recorder) Record(ctx context.Context, e Entry) error {
	log := &AuditLog{
		ID:             uuid.New(),
		LeaveRequestID: e.LeaveRequestID,
		ActorUserID:    e.ActorID,
		Action:         e.Action,
		OldValue:       stringify(e.OldValue),
		NewValue:       stringify(e.NewValue),
		CreatedAt:      r.now().UTC(),
	}
	if e.FieldChanged != "" {
		field := e.FieldChanged
		log.FieldChanged = &field
	}
	return r.repo.Create(ctx, log)
}

// stringify renders v as text, or nil when v is absent (including typed nil pointers).
func stringify(v any) *string {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		s = t.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	return &s
}
