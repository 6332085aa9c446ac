package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "calibra/pkg/domain"
)

// EventCategory classifies audit events for retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers changes to official results: score locks,
	// calibration changes, adjustment decisions. Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine workflow activity. Can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted by services after a successful state change. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// UserID is the employee the event is about, when there is one.
	UserID id.UserID
	// ActorID is who performed the action, when different from UserID.
	ActorID   id.UserID
	CycleID   id.CycleID
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	// Cycle events
	EventReviewCycleCreated   AuditEvent = "review_cycle_created"
	EventReviewCycleStarted   AuditEvent = "review_cycle_started"
	EventCalibrationEntered   AuditEvent = "review_cycle_calibration_entered"
	EventReviewCycleCompleted AuditEvent = "review_cycle_completed"
	EventReviewCycleDeleted   AuditEvent = "review_cycle_deleted"
	EventDeadlinePassed       AuditEvent = "review_deadline_passed"

	// Nomination events
	EventPeersNominated       AuditEvent = "peers_nominated"
	EventNominationResponded  AuditEvent = "nomination_responded"
	EventNominationOverridden AuditEvent = "nomination_overridden"

	// Calibration events
	EventCalibrationSessionCreated   AuditEvent = "calibration_session_created"
	EventCalibrationSessionStarted   AuditEvent = "calibration_session_started"
	EventCalibrationSessionCompleted AuditEvent = "calibration_session_completed"
	EventCalibrationAdjusted         AuditEvent = "calibration_adjustment_applied"
	EventCalibrationFinalized        AuditEvent = "calibration_finalized"

	// Final score events
	EventFinalScoreLocked   AuditEvent = "final_score_locked"
	EventFinalScoreUnlocked AuditEvent = "final_score_unlocked"
	EventFeedbackDelivered  AuditEvent = "feedback_delivered"

	// Adjustment events
	EventAdjustmentRequested AuditEvent = "score_adjustment_requested"
	EventAdjustmentApproved  AuditEvent = "score_adjustment_approved"
	EventAdjustmentRejected  AuditEvent = "score_adjustment_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventCalibrationAdjusted:  CategoryCompliance,
	EventCalibrationFinalized: CategoryCompliance,
	EventFinalScoreLocked:     CategoryCompliance,
	EventFinalScoreUnlocked:   CategoryCompliance,
	EventFeedbackDelivered:    CategoryCompliance,
	EventAdjustmentRequested:  CategoryCompliance,
	EventAdjustmentApproved:   CategoryCompliance,
	EventAdjustmentRejected:   CategoryCompliance,
	EventReviewCycleCompleted: CategoryCompliance,
	EventReviewCycleDeleted:   CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// OutboxEntry is an audit event waiting to be relayed to the event stream.
type OutboxEntry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}
