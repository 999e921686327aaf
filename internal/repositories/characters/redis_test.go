package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/shared"
	apperr "github.com/KirkDiggler/chronicle-bot-discord/internal/errors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: s.mockClient})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RedisRepoTestSuite) storedJSON(char *character.Character) string {
	jsonData, err := json.Marshal(toCharacterData(char))
	s.Require().NoError(err)
	return string(jsonData)
}

func testCharacter() *character.Character {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &character.Character{
		ID:          "char-1",
		OwnerID:     "player-1",
		ChronicleID: "chronicle-1",
		Name:        "Morgan",
		Archetype:   shared.ArchetypeMage,
		Status:      shared.CharacterStatusApproved,
		XP:          34,
		Freebies:    2,
		Traits:      map[string]int{"Arete": 3, "Forces": 3},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	char := testCharacter()

	// Happy path
	s.mock.ExpectGet("character:char-1").SetVal(s.storedJSON(char))

	got, err := s.repo.Get(ctx, "char-1")
	s.NoError(err)
	s.Equal("Morgan", got.Name)
	s.Equal(3, got.TraitRating("Forces"))

	// Missing key
	s.mock.ExpectGet("character:char-1").RedisNil()

	_, err = s.repo.Get(ctx, "char-1")
	s.Error(err)
	s.True(apperr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("character:char-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Get(ctx, "char-1")
	s.Error(err)

	// Input validation
	_, err = s.repo.Get(ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	char := testCharacter()

	// Happy path; the stored JSON carries a fresh timestamp
	s.mock.ExpectExists("character:char-1").SetVal(0)
	s.mock.Regexp().ExpectSet("character:char-1", `.*"name":"Morgan".*`, 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:player-1:characters", "char-1").SetVal(1)
	s.mock.ExpectSAdd("chronicle:chronicle-1:characters", "char-1").SetVal(1)

	s.NoError(s.repo.Create(ctx, char))

	// Duplicate ID
	s.mock.ExpectExists("character:char-1").SetVal(1)

	err := s.repo.Create(ctx, char)
	s.Error(err)
	s.True(apperr.IsAlreadyExists(err))

	// Input validation
	s.Error(s.repo.Create(ctx, nil))
	s.Error(s.repo.Create(ctx, &character.Character{ID: "char-2"}))
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	char := testCharacter()

	// Happy path; existing record supplies the preserved creation time
	s.mock.ExpectGet("character:char-1").SetVal(s.storedJSON(char))
	s.mock.Regexp().ExpectSet("character:char-1", `.*"xp":34.*`, 0).SetVal("OK")

	s.NoError(s.repo.Update(ctx, char))

	// Missing record
	s.mock.ExpectGet("character:char-1").RedisNil()

	err := s.repo.Update(ctx, char)
	s.Error(err)
	s.True(apperr.IsNotFound(err))

	// Input validation
	s.Error(s.repo.Update(ctx, nil))
	s.Error(s.repo.Update(ctx, &character.Character{}))
}

func (s *RedisRepoTestSuite) TestGetByOwner() {
	ctx := context.Background()
	char := testCharacter()

	s.mock.ExpectSMembers("owner:player-1:characters").SetVal([]string{"char-1", "char-gone"})
	s.mock.ExpectGet("character:char-1").SetVal(s.storedJSON(char))
	s.mock.ExpectGet("character:char-gone").RedisNil()

	chars, err := s.repo.GetByOwner(ctx, "player-1")
	s.NoError(err)
	s.Require().Len(chars, 1)
	s.Equal("char-1", chars[0].ID)

	// Dependency error
	s.mock.ExpectSMembers("owner:player-1:characters").SetErr(errors.New("redis error"))

	_, err = s.repo.GetByOwner(ctx, "player-1")
	s.Error(err)

	// Input validation
	_, err = s.repo.GetByOwner(ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestUpdateAtomic_Validation() {
	ctx := context.Background()

	_, err := s.repo.UpdateAtomic(ctx, "", func(*character.Character) error { return nil })
	s.Error(err)

	_, err = s.repo.UpdateAtomic(ctx, "char-1", nil)
	s.Error(err)
}
