// Package friends is the friends-list data layer. It stands in for a
// backend that does not exist yet: an in-memory database behind a
// fixed network delay, exposing the same calls the real service will.
package friends

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tripmark/internal/models"
	"tripmark/pkg/utils"
)

// SeedUser is one row of the mock user directory.
type SeedUser struct {
	ID           string
	Name         string
	ProfileImage string
}

type request struct {
	friendshipID string
	userID       string
	requestedAt  time.Time
}

// Service holds the mock database. The mutex makes the fake behave
// like the single-writer backend it stands in for.
type Service struct {
	mu  sync.Mutex
	log *zap.Logger
	now func() time.Time

	delay   time.Duration
	selfID  string
	users   []SeedUser
	friends map[string]SeedUser
	pending []request
	nextID  int
}

type Option func(*Service)

// WithDelay sets the simulated network latency; tests pass 0.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithDirectory replaces the default mock directory. selfID marks which
// entry is the acting user, friendIDs and requestIDs pre-populate the
// friend list and the received-request inbox.
func WithDirectory(selfID string, users []SeedUser, friendIDs, requestIDs []string) Option {
	return func(s *Service) {
		s.selfID = selfID
		s.users = users
		s.friends = make(map[string]SeedUser)
		s.pending = nil
		for _, id := range friendIDs {
			if u, ok := s.lookup(id); ok {
				s.friends[id] = u
			}
		}
		for _, id := range requestIDs {
			if _, ok := s.lookup(id); ok {
				s.pending = append(s.pending, request{
					friendshipID: s.newFriendshipID(),
					userID:       id,
					requestedAt:  s.now(),
				})
			}
		}
	}
}

func New(log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:     log,
		now:     time.Now,
		delay:   500 * time.Millisecond,
		friends: make(map[string]SeedUser),
		nextID:  100,
	}
	defaultDirectory(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultDirectory(s *Service) {
	s.selfID = "user_demo"
	s.users = []SeedUser{
		{ID: "user_demo", Name: "Demo Traveler"},
		{ID: "user_amelia", Name: "Amelia Kim"},
		{ID: "user_jun", Name: "Jun Park"},
		{ID: "user_sofia", Name: "Sofia Lee"},
		{ID: "user_minjun", Name: "Minjun Choi"},
		{ID: "user_subin", Name: "Subin Jung"},
		{ID: "user_yuri", Name: "Yuri Cho"},
	}
	s.friends[s.users[2].ID] = s.users[2]
	s.friends[s.users[3].ID] = s.users[3]
	s.pending = []request{
		{friendshipID: s.newFriendshipID(), userID: "user_minjun", requestedAt: s.now()},
		{friendshipID: s.newFriendshipID(), userID: "user_subin", requestedAt: s.now()},
	}
}

func (s *Service) newFriendshipID() string {
	s.nextID++
	return fmt.Sprintf("friendship_%d", s.nextID)
}

func (s *Service) lookup(userID string) (SeedUser, bool) {
	for _, u := range s.users {
		if u.ID == userID {
			return u, true
		}
	}
	return SeedUser{}, false
}

// wait simulates the network round trip; it respects cancellation.
func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}

// SearchUsers finds directory entries by case-insensitive substring,
// excluding the acting user and anyone already befriended. Every row
// carries the searchResult kind, decided here at the fetch boundary.
func (s *Service) SearchUsers(ctx context.Context, name string) ([]models.FriendListItem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return []models.FriendListItem{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(name)
	out := make([]models.FriendListItem, 0)
	for _, u := range s.users {
		if u.ID == s.selfID {
			continue
		}
		if _, isFriend := s.friends[u.ID]; isFriend {
			continue
		}
		if !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		out = append(out, models.FriendListItem{
			Kind:         models.KindSearchResult,
			UserID:       u.ID,
			Name:         u.Name,
			ProfileImage: u.ProfileImage,
		})
	}
	return out, nil
}

func (s *Service) Friends(ctx context.Context) ([]models.FriendListItem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FriendListItem, 0, len(s.friends))
	for _, u := range s.users {
		f, ok := s.friends[u.ID]
		if !ok {
			continue
		}
		out = append(out, models.FriendListItem{
			Kind:         models.KindFriend,
			UserID:       f.ID,
			Name:         f.Name,
			ProfileImage: f.ProfileImage,
		})
	}
	return out, nil
}

func (s *Service) ReceivedRequests(ctx context.Context) ([]models.FriendListItem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FriendListItem, 0, len(s.pending))
	for _, req := range s.pending {
		u, ok := s.lookup(req.userID)
		if !ok {
			continue
		}
		out = append(out, models.FriendListItem{
			Kind:         models.KindReceivedRequest,
			UserID:       u.ID,
			Name:         u.Name,
			ProfileImage: u.ProfileImage,
			FriendshipID: req.friendshipID,
			RequestDate:  req.requestedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// SendRequest records an outgoing request. The mock backend accepts it
// without creating inbox state, as the stand-in service did.
func (s *Service) SendRequest(ctx context.Context, userID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(userID); !ok {
		return utils.ErrUserNotFound
	}
	s.log.Info("friend request sent", zap.String("toUserId", userID))
	return nil
}

// AcceptRequest moves a pending request into the friend list.
func (s *Service) AcceptRequest(ctx context.Context, userID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, req := range s.pending {
		if req.userID != userID {
			continue
		}
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		if u, ok := s.lookup(userID); ok {
			s.friends[userID] = u
		}
		return nil
	}
	return utils.ErrRequestNotFound
}

func (s *Service) RejectRequest(ctx context.Context, userID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, req := range s.pending {
		if req.userID == userID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return nil
		}
	}
	return utils.ErrRequestNotFound
}

func (s *Service) RemoveFriend(ctx context.Context, friendID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.friends[friendID]; !ok {
		return utils.ErrFriendNotFound
	}
	delete(s.friends, friendID)
	return nil
}
