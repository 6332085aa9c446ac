package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/requestcontext"
)

// NominatePeers records 3 to 5 peer nominations for the nominator.
//
// Validation runs in a fixed order and stops at the first failure; nothing is
// saved unless every nominee passes every check. Duplicates are checked against
// stored nominations only, so an id repeated within one request is saved twice.
func (s *Service) NominatePeers(ctx context.Context, nominatorID id.UserID, cycleID id.CycleID, nomineeIDs []id.UserID) (_ []models.NominationResult, err error) {
	ctx, span := s.startSpan(ctx, "NominatePeers",
		attribute.String("cycle_id", cycleID.String()),
		attribute.Int("nominees", len(nomineeIDs)),
	)
	defer func() { endSpan(span, err) }()

	if _, err := s.loadCycle(ctx, cycleID); err != nil {
		return nil, err
	}

	if len(nomineeIDs) < models.MinPeerNominations || len(nomineeIDs) > models.MaxPeerNominations {
		return nil, s.reject("nominate_peers", dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("Must nominate between %d and %d peers", models.MinPeerNominations, models.MaxPeerNominations)))
	}

	nominator, err := s.users.FindByID(ctx, nominatorID)
	if err != nil {
		return nil, notFound(err, "Nominator user not found")
	}

	for _, nomineeID := range nomineeIDs {
		if nomineeID == nominatorID {
			return nil, s.reject("nominate_peers",
				dErrors.New(dErrors.CodeBadRequest, "Cannot nominate yourself for peer feedback"))
		}

		nominee, err := s.users.FindByID(ctx, nomineeID)
		if err != nil {
			return nil, notFound(err, fmt.Sprintf("Nominee with ID %s not found", nomineeID))
		}

		if nominator.HasManager() && nominee.ID == nominator.ManagerID {
			return nil, s.reject("nominate_peers",
				dErrors.New(dErrors.CodeBadRequest, "Cannot nominate your manager for peer feedback"))
		}

		existing, err := s.nominations.FindByNominatorAndCycle(ctx, nominatorID, cycleID)
		if err != nil {
			return nil, err
		}
		for _, n := range existing {
			if n.NomineeID == nomineeID {
				return nil, s.reject("nominate_peers", dErrors.New(dErrors.CodeConflict,
					fmt.Sprintf("Already nominated peer with ID %s", nomineeID)))
			}
		}
	}

	now := requestcontext.Now(ctx)
	nominations := make([]*models.PeerNomination, 0, len(nomineeIDs))
	for _, nomineeID := range nomineeIDs {
		n, err := models.NewPeerNomination(id.NominationID(uuid.New()), cycleID, nominatorID, nomineeID, now)
		if err != nil {
			return nil, err
		}
		nominations = append(nominations, n)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, n := range nominations {
			if err := s.nominations.Save(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]models.NominationResult, 0, len(nominations))
	for _, n := range nominations {
		results = append(results, models.NominationResult{
			ID:          n.ID,
			NomineeID:   n.NomineeID,
			NomineeName: s.displayName(ctx, n.NomineeID),
			Status:      n.Status,
			NominatedAt: n.NominatedAt,
		})
	}

	if s.metrics != nil {
		s.metrics.AddNominations(len(nominations))
	}
	s.logAudit(ctx, audit.EventPeersNominated, audit.Event{UserID: nominatorID, CycleID: cycleID},
		"count", len(nominations),
	)
	return results, nil
}

// displayName resolves a user's name for output. Lookup failures fall back to
// the unknown label; the write they describe has already happened.
func (s *Service) displayName(ctx context.Context, userID id.UserID) string {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "resolve display name", "user_id", userID.String(), "error", err)
		}
		return models.UnknownLabel
	}
	if u.Name == "" {
		return models.UnknownLabel
	}
	return u.Name
}

func (s *Service) ListNominations(ctx context.Context, nominatorID id.UserID, cycleID id.CycleID) ([]*models.PeerNomination, error) {
	return s.nominations.FindByNominatorAndCycle(ctx, nominatorID, cycleID)
}

// RespondToNomination lets the nominee accept or decline a pending nomination.
func (s *Service) RespondToNomination(ctx context.Context, nominationID id.NominationID, nomineeID id.UserID, accept bool) (_ *models.PeerNomination, err error) {
	ctx, span := s.startSpan(ctx, "RespondToNomination", attribute.Bool("accept", accept))
	defer func() { endSpan(span, err) }()

	nomination, err := s.loadNomination(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	if nomination.NomineeID != nomineeID {
		return nil, s.reject("respond_nomination",
			dErrors.New(dErrors.CodeForbidden, "Only the nominee can respond to this nomination"))
	}

	now := requestcontext.Now(ctx)
	decision := "accepted"
	if accept {
		err = nomination.Accept(now)
	} else {
		decision = "declined"
		err = nomination.Decline(now)
	}
	if err != nil {
		return nil, s.reject("respond_nomination", err)
	}
	if err := s.nominations.Save(ctx, nomination); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventNominationResponded,
		audit.Event{UserID: nomination.NominatorID, ActorID: nomineeID, CycleID: nomination.CycleID},
		"nomination_id", nominationID.String(),
		"decision", decision,
	)
	return nomination, nil
}

// OverrideNomination lets the nominator's direct manager withdraw a pending nomination.
func (s *Service) OverrideNomination(ctx context.Context, nominationID id.NominationID, managerID id.UserID) (_ *models.PeerNomination, err error) {
	ctx, span := s.startSpan(ctx, "OverrideNomination")
	defer func() { endSpan(span, err) }()

	nomination, err := s.loadNomination(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	nominator, err := s.users.FindByID(ctx, nomination.NominatorID)
	if err != nil {
		return nil, notFound(err, "Nominator user not found")
	}
	if !nominator.IsDirectReportOf(managerID) {
		return nil, s.reject("override_nomination",
			dErrors.New(dErrors.CodeForbidden, "Only the nominator's manager can override a nomination"))
	}

	if err := nomination.OverrideByManager(requestcontext.Now(ctx)); err != nil {
		return nil, s.reject("override_nomination", err)
	}
	if err := s.nominations.Save(ctx, nomination); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventNominationOverridden,
		audit.Event{UserID: nomination.NominatorID, ActorID: managerID, CycleID: nomination.CycleID},
		"nomination_id", nominationID.String(),
		"nominee_id", nomination.NomineeID.String(),
	)
	return nomination, nil
}

func (s *Service) loadNomination(ctx context.Context, nominationID id.NominationID) (*models.PeerNomination, error) {
	n, err := s.nominations.FindByID(ctx, nominationID)
	if err != nil {
		return nil, notFound(err, "Nomination not found")
	}
	return n, nil
}
