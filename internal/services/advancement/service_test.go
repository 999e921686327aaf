package advancement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	domainAdvancement "github.com/KirkDiggler/chronicle-bot-discord/internal/domain/advancement"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/advancements"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/characters"
	advancementService "github.com/KirkDiggler/chronicle-bot-discord/internal/services/advancement"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/testutils"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	charRepo characters.Repository
	advRepo  advancements.Repository
	service  advancementService.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.charRepo = characters.NewInMemoryRepository()
	s.advRepo = advancements.NewInMemoryRepository()
	s.service = advancementService.NewService(&advancementService.ServiceConfig{
		CharacterRepository:   s.charRepo,
		AdvancementRepository: s.advRepo,
	})
}

func (s *ServiceSuite) createMage(xp, freebies int) *character.Character {
	char := testutils.CreateTestMage("mage-1", "player-1", "chronicle-1", "Morgan")
	char.XP = xp
	char.Freebies = freebies
	s.Require().NoError(s.charRepo.Create(s.ctx, char))
	return char
}

func (s *ServiceSuite) createMortal(xp, freebies int) *character.Character {
	char := testutils.CreateTestMortal("mortal-1", "player-1", "chronicle-1", "Alex")
	char.XP = xp
	char.Freebies = freebies
	s.Require().NoError(s.charRepo.Create(s.ctx, char))
	return char
}

func (s *ServiceSuite) TestSpendExperience_RaisesSphere() {
	char := s.createMage(50, 0)
	s.Require().Equal(2, char.TraitRating("Forces"))

	output, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategorySphere,
		Example:     "Forces",
	})
	s.Require().NoError(err)

	s.Equal("Forces", output.TraitName)
	s.Equal(3, output.NewRating)
	s.Equal(16, output.Cost)
	s.Equal(34, output.Character.XP)
	s.Require().NotNil(output.Record)
	s.Nil(output.Request)

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(3, stored.TraitRating("Forces"))
	s.Equal(34, stored.XP)

	history, err := s.service.History(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(16, history[0].Cost)
	s.Equal("Forces", history[0].TraitName)
}

func (s *ServiceSuite) TestSpendExperience_NewSphereCostsFlatTen() {
	char := s.createMage(50, 0)
	s.Require().Equal(0, char.TraitRating("Matter"))

	output, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategorySphere,
		Example:     "Matter",
	})
	s.Require().NoError(err)

	s.Equal(10, output.Cost)
	s.Equal(1, output.NewRating)
	s.Equal(40, output.Character.XP)
}

func (s *ServiceSuite) TestSpendExperience_InsufficientLeavesStateUntouched() {
	char := s.createMage(5, 0)

	_, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategorySphere,
		Example:     "Forces",
	})
	s.Require().Error(err)
	s.Equal(rulebook.ReasonInsufficientPoints, rulebook.Reason(err))

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(5, stored.XP)
	s.Equal(2, stored.TraitRating("Forces"))

	history, err := s.service.History(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *ServiceSuite) TestSpendExperience_SphereAtAreteCapIsRejected() {
	char := testutils.CreateTestMage("mage-2", "player-1", "chronicle-1", "Capped")
	char.XP = 50
	char.SetTrait(rulebook.TraitArete, 2)
	char.SetTrait("Forces", 2)
	s.Require().NoError(s.charRepo.Create(s.ctx, char))

	_, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategorySphere,
		Example:     "Forces",
	})
	s.Require().Error(err)
	s.Equal(rulebook.ReasonPrerequisiteViolation, rulebook.Reason(err))
	s.Contains(err.Error(), "cannot exceed Arete")

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(2, stored.TraitRating("Forces"))
	s.Equal(50, stored.XP)
}

func (s *ServiceSuite) TestSpendExperience_RequiresApprovedCharacter() {
	char := testutils.CreateTestMortal("mortal-2", "player-1", "chronicle-1", "Draft")
	char.Status = shared.CharacterStatusUnfinished
	char.XP = 20
	s.Require().NoError(s.charRepo.Create(s.ctx, char))

	_, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategoryAttribute,
		Example:     "Strength",
	})
	s.Require().Error(err)
	s.True(apperr.IsConflict(err))
}

func (s *ServiceSuite) TestSpendExperience_UnknownCategoryIsInternal() {
	char := s.createMortal(50, 0)

	_, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategorySphere,
		Example:     "Forces",
	})
	s.Require().Error(err)
	s.True(apperr.IsInternal(err))
	s.Contains(err.Error(), "Unknown experience category")

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(50, stored.XP)
}

func (s *ServiceSuite) TestSpendExperience_SingletonNeedsNoExample() {
	char := s.createMortal(50, 0)
	s.Require().Equal(5, char.TraitRating(rulebook.TraitWillpower))

	output, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategoryWillpower,
	})
	s.Require().NoError(err)
	s.Equal(rulebook.TraitWillpower, output.TraitName)
	s.Equal(6, output.NewRating)
	s.Equal(5, output.Cost)
}

func (s *ServiceSuite) TestSpend_RejectsInvalidExample() {
	char := s.createMortal(50, 0)

	_, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolExperience,
		Category:    rulebook.CategoryAttribute,
		Example:     "Punching",
	})
	s.Require().Error(err)
	s.Equal(rulebook.ReasonCategoryNotEligible, rulebook.Reason(err))
}

func (s *ServiceSuite) TestSpendFreebies_CreatesPendingRequest() {
	char := s.createMortal(0, 15)
	s.Require().Equal(2, char.TraitRating("Strength"))

	output, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryAttribute,
		Example:     "Strength",
	})
	s.Require().NoError(err)

	s.Equal(3, output.NewRating)
	s.Equal(5, output.Cost)
	s.Equal(10, output.Character.Freebies)
	s.Nil(output.Record)
	s.Require().NotNil(output.Request)
	s.Equal(domainAdvancement.ApprovalStatusPending, output.Request.Status)
	s.Equal("chronicle-1", output.Request.ChronicleID)
	s.Equal(1, output.Request.Step)

	pending, err := s.service.PendingRequests(s.ctx, "chronicle-1")
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(output.Request.ID, pending[0].ID)
}

func (s *ServiceSuite) TestApprove_KeepsRatings() {
	char := s.createMortal(0, 15)
	spend, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryAttribute,
		Example:     "Strength",
	})
	s.Require().NoError(err)

	output, err := s.service.Approve(s.ctx, &advancementService.ReviewInput{
		RequestID:  spend.Request.ID,
		ApproverID: "storyteller-1",
	})
	s.Require().NoError(err)
	s.Equal(domainAdvancement.ApprovalStatusApproved, output.Request.Status)
	s.Equal("storyteller-1", output.Request.ApproverID)

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(3, stored.TraitRating("Strength"))
	s.Equal(10, stored.Freebies)

	pending, err := s.service.PendingRequests(s.ctx, "chronicle-1")
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *ServiceSuite) TestDeny_ReversesExactly() {
	char := s.createMortal(0, 15)
	char.SetTrait("Brawl", 2)
	s.Require().NoError(s.charRepo.Update(s.ctx, char))

	spend, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryAttribute,
		Example:     "Strength",
	})
	s.Require().NoError(err)

	output, err := s.service.Deny(s.ctx, &advancementService.ReviewInput{
		RequestID:  spend.Request.ID,
		ApproverID: "storyteller-1",
	})
	s.Require().NoError(err)
	s.Equal(domainAdvancement.ApprovalStatusDenied, output.Request.Status)

	// The strength step and cost come back; nothing else moves
	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(2, stored.TraitRating("Strength"))
	s.Equal(15, stored.Freebies)
	s.Equal(2, stored.TraitRating("Brawl"))
	s.Equal(0, stored.XP)
}

func (s *ServiceSuite) TestDeny_TwiceConflicts() {
	char := s.createMortal(0, 15)
	spend, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryAttribute,
		Example:     "Strength",
	})
	s.Require().NoError(err)

	review := &advancementService.ReviewInput{
		RequestID:  spend.Request.ID,
		ApproverID: "storyteller-1",
	}
	_, err = s.service.Deny(s.ctx, review)
	s.Require().NoError(err)

	_, err = s.service.Deny(s.ctx, review)
	s.Require().Error(err)
	s.True(apperr.IsConflict(err))

	// The reversal happened once
	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(15, stored.Freebies)
	s.Equal(2, stored.TraitRating("Strength"))
}

func (s *ServiceSuite) TestApproveAfterDenyConflicts() {
	char := s.createMortal(0, 15)
	spend, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryAttribute,
		Example:     "Strength",
	})
	s.Require().NoError(err)

	_, err = s.service.Deny(s.ctx, &advancementService.ReviewInput{
		RequestID:  spend.Request.ID,
		ApproverID: "storyteller-1",
	})
	s.Require().NoError(err)

	_, err = s.service.Approve(s.ctx, &advancementService.ReviewInput{
		RequestID:  spend.Request.ID,
		ApproverID: "storyteller-1",
	})
	s.Require().Error(err)
	s.True(apperr.IsConflict(err))
}

func (s *ServiceSuite) TestSpendFreebies_RoteConsumesRotePoint() {
	char := testutils.CreateTestMage("mage-3", "player-1", "chronicle-1", "Rote Learner")
	char.Freebies = 10
	char.SetTrait(rulebook.TraitRotePoints, 1)
	s.Require().NoError(s.charRepo.Create(s.ctx, char))

	output, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryRote,
		Example:     "Ball of Abysmal Flame",
	})
	s.Require().NoError(err)
	s.Equal(rulebook.RotePrefix+"Ball of Abysmal Flame", output.TraitName)
	s.Equal(9, output.Character.Freebies)
	s.Equal(0, output.Character.TraitRating(rulebook.TraitRotePoints))

	// Denial returns both the freebie and the rote point
	_, err = s.service.Deny(s.ctx, &advancementService.ReviewInput{
		RequestID:  output.Request.ID,
		ApproverID: "storyteller-1",
	})
	s.Require().NoError(err)

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(10, stored.Freebies)
	s.Equal(1, stored.TraitRating(rulebook.TraitRotePoints))
	s.Equal(0, stored.TraitRating(rulebook.RotePrefix+"Ball of Abysmal Flame"))
}

func (s *ServiceSuite) TestSpendFreebies_RemoveTenetLowersAndDenyRestores() {
	char := testutils.CreateTestMage("mage-4", "player-1", "chronicle-1", "Heretic")
	char.Freebies = 20
	s.Require().NoError(s.charRepo.Create(s.ctx, char))
	s.Require().Len(rulebook.Tenets(char), 4)

	tenet := rulebook.TenetPrefix + "Do No Harm"
	output, err := s.service.Spend(s.ctx, &advancementService.SpendInput{
		CharacterID: char.ID,
		Pool:        shared.PoolFreebies,
		Category:    rulebook.CategoryRemoveTenet,
		Example:     tenet,
	})
	s.Require().NoError(err)
	s.Equal(0, output.NewRating)
	s.Equal(10, output.Cost)
	s.Equal(-1, output.Request.Step)

	stored, err := s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Len(rulebook.Tenets(stored), 3)

	_, err = s.service.Deny(s.ctx, &advancementService.ReviewInput{
		RequestID:  output.Request.ID,
		ApproverID: "storyteller-1",
	})
	s.Require().NoError(err)

	stored, err = s.charRepo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Len(rulebook.Tenets(stored), 4)
	s.Equal(1, stored.TraitRating(tenet))
	s.Equal(20, stored.Freebies)
}

func (s *ServiceSuite) TestListOptions() {
	char := s.createMage(50, 0)

	output, err := s.service.ListOptions(s.ctx, char.ID, shared.PoolExperience)
	s.Require().NoError(err)
	s.Equal(shared.PoolExperience, output.Pool)

	var sphereOffer *rulebook.CategoryOffer
	for i := range output.Offers {
		if output.Offers[i].Category == rulebook.CategorySphere {
			sphereOffer = &output.Offers[i]
		}
	}
	s.Require().NotNil(sphereOffer, "a funded mage should be offered spheres")
	s.Contains(sphereOffer.Examples, "Forces")

	// Everything offered must actually be spendable
	for _, offer := range output.Offers {
		for _, example := range offer.Examples {
			s.NoErrorf(rulebook.CheckExample(char, shared.PoolExperience, offer.Category, example),
				"offer %s/%s", offer.Category, example)
		}
	}
}

func TestSpend_NilInput(t *testing.T) {
	svc := advancementService.NewService(&advancementService.ServiceConfig{
		CharacterRepository:   characters.NewInMemoryRepository(),
		AdvancementRepository: advancements.NewInMemoryRepository(),
	})

	_, err := svc.Spend(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = svc.Spend(context.Background(), &advancementService.SpendInput{
		CharacterID: "char-1",
		Pool:        shared.PointPool("karma"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}
