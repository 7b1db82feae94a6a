package vendorsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const EventTypeLeaveApproved = "vendor.leave.approved"

// approvedMessage is the body the vendor integration consumes.
type approvedMessage struct {
	ExternalReferenceID string            `json:"external_reference_id"`
	Leave               leave.SyncRequest `json:"leave"`
	SentAt              time.Time         `json:"sent_at"`
}

// KafkaAdapter hands approved leave to the vendor integration over a topic.
// The broker ack is treated as acceptance; the reference travels with the
// message so the vendor can correlate it.
type KafkaAdapter struct {
	writer kafka.MessageWriter
	topic  string
	tracer trace.Tracer
	newRef func() string
	now    func() time.Time
	logger *zap.Logger
}

func NewKafkaAdapter(writer kafka.MessageWriter, topic string, logger ...*zap.Logger) *KafkaAdapter {
	l := zap.L().Named("vendorsync.kafka")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vendorsync.kafka")
	}
	return &KafkaAdapter{
		writer: writer,
		topic:  topic,
		tracer: otel.Tracer("github.com/cha0jun/leavey/internal/vendorsync"),
		newRef: newReference,
		now:    time.Now,
		logger: l,
	}
}

func (a *KafkaAdapter) Sync(ctx context.Context, req leave.SyncRequest) (string, error) {
	ctx, span := a.tracer.Start(ctx, "vendorsync.publish", trace.WithAttributes(
		attribute.String("leave.id", req.LeaveID),
		attribute.String("leave.reference_no", req.ReferenceNo),
		attribute.String("messaging.destination", a.topic),
	))
	defer span.End()

	ref := a.newRef()
	body, err := json.Marshal(approvedMessage{
		ExternalReferenceID: ref,
		Leave:               req,
		SentAt:              a.now().UTC(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		return "", fmt.Errorf("encode vendor message: %w", err)
	}

	vendor := ""
	if req.VendorID != nil {
		vendor = *req.VendorID
	}
	msg := kafkago.Message{
		Topic: a.topic,
		Key:   []byte(req.LeaveID),
		Value: body,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(EventTypeLeaveApproved)},
			{Key: "vendor_id", Value: []byte(vendor)},
			{Key: "external_reference_id", Value: []byte(ref)},
		},
	}
	if err := a.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		return "", fmt.Errorf("publish vendor message: %w", err)
	}

	span.SetAttributes(attribute.String("vendor.reference_id", ref))
	a.logger.Debug("vendor message published",
		zap.String("leave_id", req.LeaveID),
		zap.String("external_reference_id", ref),
	)
	return ref, nil
}
