package friends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmark/internal/models"
	"tripmark/pkg/utils"
)

func newTestService() *Service {
	return New(zap.NewNop(),
		WithDelay(0),
		WithDirectory("me",
			[]SeedUser{
				{ID: "me", Name: "Demo Traveler"},
				{ID: "u2", Name: "Amelia Kim"},
				{ID: "u3", Name: "Jun Park"},
				{ID: "u4", Name: "Minjun Choi"},
				{ID: "u5", Name: "Subin Jung"},
			},
			[]string{"u2"},       // already friends
			[]string{"u4", "u5"}, // pending requests
		))
}

func TestSearchExcludesSelfAndFriends(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	results, err := s.SearchUsers(ctx, "ju")
	require.NoError(t, err)

	// "Jun Park", "Minjun Choi" and "Subin Jung" match; "me" and the
	// existing friend are out regardless of name
	ids := make([]string, 0, len(results))
	for _, r := range results {
		assert.Equal(t, models.KindSearchResult, r.Kind)
		ids = append(ids, r.UserID)
	}
	assert.ElementsMatch(t, []string{"u3", "u4", "u5"}, ids)

	empty, err := s.SearchUsers(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFriendsListIsTagged(t *testing.T) {
	s := newTestService()

	list, err := s.Friends(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.KindFriend, list[0].Kind)
	assert.Equal(t, "u2", list[0].UserID)
	assert.Equal(t, "Amelia Kim", list[0].Name)
}

func TestReceivedRequestsCarryFriendshipID(t *testing.T) {
	s := newTestService()

	requests, err := s.ReceivedRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)
	for _, r := range requests {
		assert.Equal(t, models.KindReceivedRequest, r.Kind)
		assert.NotEmpty(t, r.FriendshipID)
		assert.NotEmpty(t, r.RequestDate)
	}
}

func TestAcceptMovesRequestToFriends(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	require.NoError(t, s.AcceptRequest(ctx, "u4"))

	requests, err := s.ReceivedRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "u5", requests[0].UserID)

	list, err := s.Friends(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.UserID)
	}
	assert.ElementsMatch(t, []string{"u2", "u4"}, ids)

	// accepted users disappear from search results
	results, err := s.SearchUsers(ctx, "minjun")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRejectRemovesRequestOnly(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	require.NoError(t, s.RejectRequest(ctx, "u4"))

	requests, err := s.ReceivedRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	list, err := s.Friends(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, s.RejectRequest(ctx, "u4"), utils.ErrRequestNotFound)
	assert.ErrorIs(t, s.AcceptRequest(ctx, "u4"), utils.ErrRequestNotFound)
}

func TestRemoveFriend(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	require.NoError(t, s.RemoveFriend(ctx, "u2"))
	list, err := s.Friends(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, s.RemoveFriend(ctx, "u2"), utils.ErrFriendNotFound)
}

func TestSendRequestValidatesUser(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	assert.NoError(t, s.SendRequest(ctx, "u3"))
	assert.ErrorIs(t, s.SendRequest(ctx, "ghost"), utils.ErrUserNotFound)
}

func TestCancelledContextStopsSimulatedNetwork(t *testing.T) {
	s := New(zap.NewNop()) // default delay
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Friends(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
