package vote

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestCastAndGet() {
	output, err := s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
		Choice:    models.VoteYes,
		CastAt:    s.testNow,
	})
	s.Require().NoError(err)
	s.Equal(models.VoteChoice(""), output.Previous)

	vote, err := s.repo.GetByMember(context.Background(), &GetVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
	})
	s.Require().NoError(err)
	s.Equal(models.VoteYes, vote.Choice)
	s.Equal(s.testNow.UnixNano(), vote.UpdatedAt.UnixNano())
}

func (s *RedisRepositoryTestSuite) TestCastReplacesPreviousChoice() {
	_, err := s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
		Choice:    models.VoteYes,
		CastAt:    s.testNow,
	})
	s.Require().NoError(err)

	output, err := s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
		Choice:    models.VoteNo,
		CastAt:    s.testNow.Add(time.Minute),
	})
	s.Require().NoError(err)
	s.Equal(models.VoteYes, output.Previous)

	// Only the newest choice remains
	votes, err := s.repo.ListBySession(context.Background(), &ListBySessionInput{
		SessionID: 1,
	})
	s.Require().NoError(err)
	s.Require().Len(votes.Votes, 1)
	s.Equal(models.VoteNo, votes.Votes[0].Choice)
}

func (s *RedisRepositoryTestSuite) TestListBySessionKeepsUpdateOrder() {
	members := []string{"user-1", "user-2", "user-3"}
	for i, memberID := range members {
		_, err := s.repo.Cast(context.Background(), &CastVoteInput{
			SessionID: 1,
			MemberID:  memberID,
			Choice:    models.VoteYes,
			CastAt:    s.testNow.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}

	// user-1 changes their mind later; they move to the end of the order
	_, err := s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
		Choice:    models.VoteMaybe,
		CastAt:    s.testNow.Add(time.Hour),
	})
	s.Require().NoError(err)

	output, err := s.repo.ListBySession(context.Background(), &ListBySessionInput{
		SessionID: 1,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Votes, 3)
	s.Equal("user-2", output.Votes[0].MemberID)
	s.Equal("user-3", output.Votes[1].MemberID)
	s.Equal("user-1", output.Votes[2].MemberID)
	s.Equal(models.VoteMaybe, output.Votes[2].Choice)
}

func (s *RedisRepositoryTestSuite) TestVotesAreSessionScoped() {
	_, err := s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
		Choice:    models.VoteYes,
		CastAt:    s.testNow,
	})
	s.Require().NoError(err)

	_, err = s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 2,
		MemberID:  "user-1",
		Choice:    models.VoteNo,
		CastAt:    s.testNow,
	})
	s.Require().NoError(err)

	first, err := s.repo.GetByMember(context.Background(), &GetVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
	})
	s.Require().NoError(err)
	s.Equal(models.VoteYes, first.Choice)

	second, err := s.repo.GetByMember(context.Background(), &GetVoteInput{
		SessionID: 2,
		MemberID:  "user-1",
	})
	s.Require().NoError(err)
	s.Equal(models.VoteNo, second.Choice)
}

func (s *RedisRepositoryTestSuite) TestGetVoterIDs() {
	for _, memberID := range []string{"user-1", "user-2"} {
		_, err := s.repo.Cast(context.Background(), &CastVoteInput{
			SessionID: 1,
			MemberID:  memberID,
			Choice:    models.VoteMaybe,
			CastAt:    s.testNow,
		})
		s.Require().NoError(err)
	}

	voterIDs, err := s.repo.GetVoterIDs(context.Background(), &GetVoterIDsInput{
		SessionID: 1,
	})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"user-1", "user-2"}, voterIDs)

	empty, err := s.repo.GetVoterIDs(context.Background(), &GetVoterIDsInput{
		SessionID: 99,
	})
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentVote() {
	_, err := s.repo.GetByMember(context.Background(), &GetVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
	})
	s.Require().Error(err)
	s.Equal(ErrVoteNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestCastRejectsUnknownChoice() {
	_, err := s.repo.Cast(context.Background(), &CastVoteInput{
		SessionID: 1,
		MemberID:  "user-1",
		Choice:    models.VoteChoice("perhaps"),
		CastAt:    s.testNow,
	})
	s.Require().Error(err)
}
