package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"calibra/internal/review/metrics"
	"calibra/internal/review/models"
	"calibra/pkg/attrs"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
	"calibra/pkg/requestcontext"
)

// Store ports. Lookups of a single record return sentinel.ErrNotFound when it
// is absent; list lookups return an empty slice.

type CycleStore interface {
	FindByID(ctx context.Context, cycleID id.CycleID) (*models.ReviewCycle, error)
	FindActive(ctx context.Context) (*models.ReviewCycle, error)
	FindByYear(ctx context.Context, year int) ([]*models.ReviewCycle, error)
	Save(ctx context.Context, cycle *models.ReviewCycle) error
	Delete(ctx context.Context, cycleID id.CycleID) error
}

type FinalScoreStore interface {
	FindByUserAndCycle(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.FinalScore, error)
	FindByCycle(ctx context.Context, cycleID id.CycleID) ([]*models.FinalScore, error)
	FindByBonusTier(ctx context.Context, cycleID id.CycleID, tier models.BonusTier) ([]*models.FinalScore, error)
	Save(ctx context.Context, score *models.FinalScore) error
	Delete(ctx context.Context, scoreID id.FinalScoreID) error
}

type UserDirectory interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByManagerID(ctx context.Context, managerID id.UserID) ([]*models.User, error)
}

type NominationStore interface {
	FindByID(ctx context.Context, nominationID id.NominationID) (*models.PeerNomination, error)
	FindByNominatorAndCycle(ctx context.Context, nominatorID id.UserID, cycleID id.CycleID) ([]*models.PeerNomination, error)
	Save(ctx context.Context, nomination *models.PeerNomination) error
}

type AdjustmentStore interface {
	FindByID(ctx context.Context, requestID id.AdjustmentRequestID) (*models.ScoreAdjustmentRequest, error)
	FindPending(ctx context.Context) ([]*models.ScoreAdjustmentRequest, error)
	FindByEmployee(ctx context.Context, employeeID id.UserID) ([]*models.ScoreAdjustmentRequest, error)
	Save(ctx context.Context, request *models.ScoreAdjustmentRequest) error
}

type CalibrationSessionStore interface {
	FindByID(ctx context.Context, sessionID id.CalibrationSessionID) (*models.CalibrationSession, error)
	FindByCycle(ctx context.Context, cycleID id.CycleID) ([]*models.CalibrationSession, error)
	Save(ctx context.Context, session *models.CalibrationSession) error
}

type SelfReviewStore interface {
	FindByUserAndCycle(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.SelfReview, error)
}

type PeerFeedbackStore interface {
	FindByRevieweeAndCycle(ctx context.Context, revieweeID id.UserID, cycleID id.CycleID) ([]*models.PeerFeedback, error)
}

type ManagerEvaluationStore interface {
	FindByEmployeeAndCycle(ctx context.Context, employeeID id.UserID, cycleID id.CycleID) (*models.ManagerEvaluation, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// TxRunner groups writes that must commit together.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stores bundles the persistence collaborators. All fields are required.
type Stores struct {
	Cycles             CycleStore
	FinalScores        FinalScoreStore
	Users              UserDirectory
	Nominations        NominationStore
	Adjustments        AdjustmentStore
	Sessions           CalibrationSessionStore
	SelfReviews        SelfReviewStore
	PeerFeedback       PeerFeedbackStore
	ManagerEvaluations ManagerEvaluationStore
}

// Service runs the review workflows: cycle administration, nominations,
// calibration, final scores, adjustment requests and team aggregation.
type Service struct {
	cycles      CycleStore
	finalScores FinalScoreStore
	users       UserDirectory
	nominations NominationStore
	adjustments AdjustmentStore
	sessions    CalibrationSessionStore
	selfReviews SelfReviewStore
	peerReviews PeerFeedbackStore
	managerEval ManagerEvaluationStore

	tx             TxRunner
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	teamFetchLimit int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithTxRunner makes multi-record writes atomic. Without it writes run in sequence.
func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithTeamFetchLimit bounds concurrent per-employee lookups during team aggregation.
func WithTeamFetchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.teamFetchLimit = n
		}
	}
}

const defaultTeamFetchLimit = 16

func New(stores Stores, opts ...Option) (*Service, error) {
	switch {
	case stores.Cycles == nil:
		return nil, errors.New("cycle store is required")
	case stores.FinalScores == nil:
		return nil, errors.New("final score store is required")
	case stores.Users == nil:
		return nil, errors.New("user directory is required")
	case stores.Nominations == nil:
		return nil, errors.New("nomination store is required")
	case stores.Adjustments == nil:
		return nil, errors.New("adjustment store is required")
	case stores.Sessions == nil:
		return nil, errors.New("calibration session store is required")
	case stores.SelfReviews == nil:
		return nil, errors.New("self review store is required")
	case stores.PeerFeedback == nil:
		return nil, errors.New("peer feedback store is required")
	case stores.ManagerEvaluations == nil:
		return nil, errors.New("manager evaluation store is required")
	}

	s := &Service{
		cycles:         stores.Cycles,
		finalScores:    stores.FinalScores,
		users:          stores.Users,
		nominations:    stores.Nominations,
		adjustments:    stores.Adjustments,
		sessions:       stores.Sessions,
		selfReviews:    stores.SelfReviews,
		peerReviews:    stores.PeerFeedback,
		managerEval:    stores.ManagerEvaluations,
		tx:             sequential{},
		tracer:         otel.Tracer("calibra/review"),
		teamFetchLimit: defaultTeamFetchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type sequential struct{}

func (sequential) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// loadCycle resolves a cycle, translating absence into the not-found domain error.
func (s *Service) loadCycle(ctx context.Context, cycleID id.CycleID) (*models.ReviewCycle, error) {
	cycle, err := s.cycles.FindByID(ctx, cycleID)
	if err != nil {
		return nil, notFound(err, "Review cycle with ID "+cycleID.String()+" not found")
	}
	return cycle, nil
}

func (s *Service) loadFinalScore(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.FinalScore, error) {
	score, err := s.finalScores.FindByUserAndCycle(ctx, userID, cycleID)
	if err != nil {
		return nil, notFound(err, "Final score not found")
	}
	return score, nil
}

// notFound maps a store miss to the domain not-found error. Other errors pass through.
func notFound(err error, message string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.NotFound(message)
	}
	return err
}

// optional returns (nil, nil) for a store miss.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

// startSpan opens an orchestrator span tagged with the request id.
func (s *Service) startSpan(ctx context.Context, name string, kv ...attribute.KeyValue) (context.Context, trace.Span) {
	if reqID := requestcontext.RequestID(ctx); reqID != "" {
		kv = append(kv, attribute.String("request_id", reqID))
	}
	return s.tracer.Start(ctx, "review."+name, trace.WithAttributes(kv...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// reject counts a business-rule failure and returns it unchanged.
func (s *Service) reject(operation string, err error) error {
	if s.metrics != nil && err != nil {
		code := string(dErrors.CodeOf(err))
		if code == "" {
			code = "unknown"
		}
		s.metrics.IncRejection(operation, code)
	}
	return err
}

// logAudit writes an audit log line and forwards the event to the publisher.
// subject carries the ids the event is about; attributes are logged as-is and
// "decision"/"reason" are copied onto the event.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, subject audit.Event, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if !subject.UserID.IsNil() {
		attributes = append(attributes, "user_id", subject.UserID.String())
	}
	if !subject.CycleID.IsNil() {
		attributes = append(attributes, "cycle_id", subject.CycleID.String())
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}

	subject.Action = string(event)
	subject.Timestamp = requestcontext.Now(ctx)
	subject.RequestID = requestcontext.RequestID(ctx)
	if subject.ActorID.IsNil() {
		subject.ActorID = requestcontext.UserID(ctx)
	}
	if subject.Subject == "" && !subject.UserID.IsNil() {
		subject.Subject = subject.UserID.String()
	}
	subject.Decision = attrs.String(attributes, "decision")
	subject.Reason = attrs.String(attributes, "reason")
	if err := s.auditPublisher.Emit(ctx, subject); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
