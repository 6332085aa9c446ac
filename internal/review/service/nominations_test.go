package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"calibra/internal/review/models"
	"calibra/internal/review/service/mocks"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
)

// expectValidNominees wires the per-nominee lookups for a passing chain.
func (s *ServiceSuite) expectValidNominees(nominator *models.User, cycleID id.CycleID, nominees []*models.User, existing []*models.PeerNomination) {
	for _, n := range nominees {
		s.users.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
	}
	s.nominations.EXPECT().FindByNominatorAndCycle(gomock.Any(), nominator.ID, cycleID).
		Return(existing, nil).Times(len(nominees))
}

// expectNameLookups wires the display-name lookups made after the save.
func (s *ServiceSuite) expectNameLookups(nominees []*models.User) {
	for _, n := range nominees {
		s.users.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
	}
}

func (s *ServiceSuite) peers(n int, managerID id.UserID) ([]*models.User, []id.UserID) {
	users := make([]*models.User, n)
	ids := make([]id.UserID, n)
	for i := range users {
		users[i] = user("Peer", managerID)
		ids[i] = users[i].ID
	}
	return users, ids
}

func (s *ServiceSuite) TestNominatePeers() {
	s.Run("unknown cycle fails before anything else", func() {
		cycleID := id.CycleID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycleID).Return(nil, sentinel.ErrNotFound)

		_, ids := s.peers(3, id.UserID{})
		_, err := s.service.NominatePeers(s.ctx, id.UserID(uuid.New()), cycleID, ids)

		s.requireNotFound(err, "Review cycle with ID "+cycleID.String()+" not found")
	})

	for _, size := range []int{0, 1, 2, 6} {
		s.Run(fmt.Sprintf("rejects batch of %d", size), func() {
			cycle := s.cycle(models.CycleStatusActive)
			s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

			_, ids := s.peers(size, id.UserID{})
			_, err := s.service.NominatePeers(s.ctx, id.UserID(uuid.New()), cycle.ID, ids)

			s.requireCode(err, dErrors.CodeValidation, "Must nominate between 3 and 5 peers")
		})
	}

	for _, size := range []int{3, 4, 5} {
		s.Run(fmt.Sprintf("persists batch of %d", size), func() {
			cycle := s.cycle(models.CycleStatusActive)
			manager := user("Manager", id.UserID{})
			nominator := user("Nominator", manager.ID)
			nominees, ids := s.peers(size, manager.ID)

			s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
			s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
			s.expectValidNominees(nominator, cycle.ID, nominees, nil)
			s.expectNameLookups(nominees)

			var saved []*models.PeerNomination
			s.nominations.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, n *models.PeerNomination) error {
					saved = append(saved, n)
					return nil
				}).Times(size)

			results, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

			s.Require().NoError(err)
			s.Len(results, size)
			s.Len(saved, size)
			for i, n := range saved {
				s.Equal(ids[i], n.NomineeID)
				s.Equal(nominator.ID, n.NominatorID)
				s.Equal(cycle.ID, n.CycleID)
				s.Equal(models.NominationPending, n.Status)
				s.Equal(s.now, n.NominatedAt)

				s.Equal(n.ID, results[i].ID)
				s.Equal("Peer", results[i].NomineeName)
				s.Equal(models.NominationPending, results[i].Status)
			}
			s.Equal([]string{string(audit.EventPeersNominated)}, s.eventActions())
			s.Equal(nominator.ID, s.events[0].UserID)
		})
	}

	s.Run("unknown nominator", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominatorID := id.UserID(uuid.New())
		_, ids := s.peers(3, id.UserID{})

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominatorID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.NominatePeers(s.ctx, nominatorID, cycle.ID, ids)

		s.requireNotFound(err, "Nominator user not found")
	})

	s.Run("self nomination fails without saving", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		nominees, ids := s.peers(2, id.UserID{})
		ids = append(ids, nominator.ID)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.expectValidNominees(nominator, cycle.ID, nominees, nil)
		s.nominations.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.requireCode(err, dErrors.CodeBadRequest, "Cannot nominate yourself for peer feedback")
		s.Empty(s.events)
	})

	s.Run("self nomination is checked before the nominee lookup", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		_, rest := s.peers(2, id.UserID{})
		ids := append([]id.UserID{nominator.ID}, rest...)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil).Times(1)

		_, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.requireCode(err, dErrors.CodeBadRequest, "Cannot nominate yourself for peer feedback")
	})

	s.Run("unknown nominee names the id", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		missing := id.UserID(uuid.New())
		_, rest := s.peers(2, id.UserID{})
		ids := append([]id.UserID{missing}, rest...)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.users.EXPECT().FindByID(gomock.Any(), missing).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.requireNotFound(err, "Nominee with ID "+missing.String()+" not found")
	})

	s.Run("manager nomination fails without saving", func() {
		cycle := s.cycle(models.CycleStatusActive)
		manager := user("Manager", id.UserID{})
		nominator := user("Nominator", manager.ID)
		_, rest := s.peers(2, manager.ID)
		ids := append([]id.UserID{manager.ID}, rest...)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.users.EXPECT().FindByID(gomock.Any(), manager.ID).Return(manager, nil)

		_, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.requireCode(err, dErrors.CodeBadRequest, "Cannot nominate your manager for peer feedback")
	})

	s.Run("previously stored nominee is a duplicate", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		nominees, ids := s.peers(3, id.UserID{})
		prior, err := models.NewPeerNomination(id.NominationID(uuid.New()), cycle.ID, nominator.ID, nominees[0].ID, s.now)
		s.Require().NoError(err)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominees[0].ID).Return(nominees[0], nil)
		s.nominations.EXPECT().FindByNominatorAndCycle(gomock.Any(), nominator.ID, cycle.ID).
			Return([]*models.PeerNomination{prior}, nil)

		_, err = s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.requireCode(err, dErrors.CodeConflict, "Already nominated peer with ID "+nominees[0].ID.String())
	})

	s.Run("repeated id within one request is saved twice", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		nominees, _ := s.peers(2, id.UserID{})
		ids := []id.UserID{nominees[0].ID, nominees[0].ID, nominees[1].ID}

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominees[0].ID).Return(nominees[0], nil).Times(4)
		s.users.EXPECT().FindByID(gomock.Any(), nominees[1].ID).Return(nominees[1], nil).Times(2)
		s.nominations.EXPECT().FindByNominatorAndCycle(gomock.Any(), nominator.ID, cycle.ID).Return(nil, nil).Times(3)
		s.nominations.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		results, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.Require().NoError(err)
		s.Len(results, 3)
		s.Equal(results[0].NomineeID, results[1].NomineeID)
		s.NotEqual(results[0].ID, results[1].ID)
	})

	s.Run("names are resolved after the save", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		nominees, ids := s.peers(3, id.UserID{})

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.expectValidNominees(nominator, cycle.ID, nominees, nil)
		s.nominations.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		renamed := *nominees[0]
		renamed.Name = "Peer Renamed"
		unnamed := *nominees[2]
		unnamed.Name = ""
		s.users.EXPECT().FindByID(gomock.Any(), nominees[0].ID).Return(&renamed, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominees[1].ID).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().FindByID(gomock.Any(), nominees[2].ID).Return(&unnamed, nil)

		results, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.Require().NoError(err)
		s.Require().Len(results, 3)
		s.Equal("Peer Renamed", results[0].NomineeName)
		s.Equal(models.UnknownLabel, results[1].NomineeName)
		s.Equal(models.UnknownLabel, results[2].NomineeName)
	})

	s.Run("store errors propagate unchanged", func() {
		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		nominees, ids := s.peers(3, id.UserID{})

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominees[0].ID).Return(nominees[0], nil)
		s.nominations.EXPECT().FindByNominatorAndCycle(gomock.Any(), nominator.ID, cycle.ID).Return(nil, errStoreDown)

		_, err := s.service.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.Equal(errStoreDown, err)
	})

	s.Run("saves run inside the transaction runner", func() {
		tx := mocks.NewMockTxRunner(s.ctrl)
		tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		svc, err := New(s.stores(), WithTxRunner(tx))
		s.Require().NoError(err)

		cycle := s.cycle(models.CycleStatusActive)
		nominator := user("Nominator", id.UserID{})
		nominees, ids := s.peers(3, id.UserID{})

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.expectValidNominees(nominator, cycle.ID, nominees, nil)
		s.nominations.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		s.nominations.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errStoreDown)

		_, err = svc.NominatePeers(s.ctx, nominator.ID, cycle.ID, ids)

		s.ErrorIs(err, errStoreDown)
	})
}

func (s *ServiceSuite) TestRespondToNomination() {
	nomination := func(nominator, nominee id.UserID) *models.PeerNomination {
		n, err := models.NewPeerNomination(id.NominationID(uuid.New()), id.CycleID(uuid.New()), nominator, nominee, s.now)
		s.Require().NoError(err)
		return n
	}

	s.Run("nominee accepts", func() {
		n := nomination(id.UserID(uuid.New()), id.UserID(uuid.New()))
		s.nominations.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
		s.nominations.EXPECT().Save(gomock.Any(), n).Return(nil)

		got, err := s.service.RespondToNomination(s.ctx, n.ID, n.NomineeID, true)

		s.Require().NoError(err)
		s.Equal(models.NominationAccepted, got.Status)
		s.Require().NotNil(got.RespondedAt)
		s.Equal(s.now, *got.RespondedAt)
		s.Equal("accepted", s.events[0].Decision)
	})

	s.Run("nominee declines", func() {
		n := nomination(id.UserID(uuid.New()), id.UserID(uuid.New()))
		s.nominations.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
		s.nominations.EXPECT().Save(gomock.Any(), n).Return(nil)

		got, err := s.service.RespondToNomination(s.ctx, n.ID, n.NomineeID, false)

		s.Require().NoError(err)
		s.Equal(models.NominationDeclined, got.Status)
	})

	s.Run("someone else cannot respond", func() {
		n := nomination(id.UserID(uuid.New()), id.UserID(uuid.New()))
		s.nominations.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)

		_, err := s.service.RespondToNomination(s.ctx, n.ID, id.UserID(uuid.New()), true)

		s.requireCode(err, dErrors.CodeForbidden, "Only the nominee can respond to this nomination")
	})

	s.Run("answered nomination cannot change", func() {
		n := nomination(id.UserID(uuid.New()), id.UserID(uuid.New()))
		s.Require().NoError(n.Decline(s.now))
		s.nominations.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)

		_, err := s.service.RespondToNomination(s.ctx, n.ID, n.NomineeID, true)

		s.ErrorIs(err, models.ErrInvalidTransition)
	})

	s.Run("unknown nomination", func() {
		nominationID := id.NominationID(uuid.New())
		s.nominations.EXPECT().FindByID(gomock.Any(), nominationID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.RespondToNomination(s.ctx, nominationID, id.UserID(uuid.New()), true)

		s.requireNotFound(err, "Nomination not found")
	})
}

func (s *ServiceSuite) TestOverrideNomination() {
	manager := user("Manager", id.UserID{})
	nominator := user("Nominator", manager.ID)

	s.Run("direct manager overrides", func() {
		n, err := models.NewPeerNomination(id.NominationID(uuid.New()), id.CycleID(uuid.New()), nominator.ID, id.UserID(uuid.New()), s.now)
		s.Require().NoError(err)
		s.nominations.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)
		s.nominations.EXPECT().Save(gomock.Any(), n).Return(nil)

		got, err := s.service.OverrideNomination(s.ctx, n.ID, manager.ID)

		s.Require().NoError(err)
		s.Equal(models.NominationOverriddenByManager, got.Status)
		s.Equal([]string{string(audit.EventNominationOverridden)}, s.eventActions())
		s.Equal(manager.ID, s.events[0].ActorID)
	})

	s.Run("other managers are forbidden", func() {
		n, err := models.NewPeerNomination(id.NominationID(uuid.New()), id.CycleID(uuid.New()), nominator.ID, id.UserID(uuid.New()), s.now)
		s.Require().NoError(err)
		s.nominations.EXPECT().FindByID(gomock.Any(), n.ID).Return(n, nil)
		s.users.EXPECT().FindByID(gomock.Any(), nominator.ID).Return(nominator, nil)

		_, err = s.service.OverrideNomination(s.ctx, n.ID, id.UserID(uuid.New()))

		s.requireCode(err, dErrors.CodeForbidden, "Only the nominator's manager can override a nomination")
	})
}

func (s *ServiceSuite) TestListNominations() {
	nominatorID := id.UserID(uuid.New())
	cycleID := id.CycleID(uuid.New())
	stored := []*models.PeerNomination{{ID: id.NominationID(uuid.New())}}
	s.nominations.EXPECT().FindByNominatorAndCycle(gomock.Any(), nominatorID, cycleID).Return(stored, nil)

	got, err := s.service.ListNominations(s.ctx, nominatorID, cycleID)

	s.Require().NoError(err)
	s.Equal(stored, got)
}
