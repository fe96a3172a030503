// Package session owns the authenticated identity. The session flag and
// user snapshot live in the isLoggedIn/user slots; the registration
// ledger lives in the separate users slot. Route guards and the record
// repository's user scoping both consult this store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripmark/internal/models"
	"tripmark/internal/storage"
	"tripmark/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RecordDeleter is the slice of the record repository needed for the
// withdrawal cascade.
type RecordDeleter interface {
	DeleteRecordsByUser(ctx context.Context, userID string) error
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	ProfileImage    string
}

type ProfilePatch struct {
	Name         *string
	ProfileImage *string
}

// Store holds the current session and the registered-user ledger, both
// mirrored to their slots synchronously with every change.
type Store struct {
	mu      sync.RWMutex
	slots   storage.SlotStore
	records RecordDeleter
	log     *zap.Logger
	now     func() time.Time

	loggedIn bool
	current  *models.User
	users    []models.User
}

// New loads session state and the ledger from their slots.
func New(ctx context.Context, slots storage.SlotStore, records RecordDeleter, log *zap.Logger) (*Store, error) {
	s := &Store{
		slots:   slots,
		records: records,
		log:     log,
		now:     time.Now,
	}

	flag, found, err := slots.Get(ctx, storage.SlotIsLoggedIn)
	if err != nil {
		return nil, fmt.Errorf("load session flag: %w", err)
	}
	s.loggedIn = found && flag == "true"

	raw, found, err := slots.Get(ctx, storage.SlotUser)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if found && raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("decode session user slot: %w", err)
		}
		s.current = &u
	}

	raw, found, err = slots.Get(ctx, storage.SlotUsers)
	if err != nil {
		return nil, fmt.Errorf("load users ledger: %w", err)
	}
	if found && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.users); err != nil {
			return nil, fmt.Errorf("decode users ledger slot: %w", err)
		}
	}

	return s, nil
}

func (s *Store) persistLedger(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users ledger: %w", err)
	}
	if err := s.slots.Set(ctx, storage.SlotUsers, string(data)); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	s.users = users
	return nil
}

func (s *Store) persistSession(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.slots.Set(ctx, storage.SlotUser, string(data)); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	if err := s.slots.Set(ctx, storage.SlotIsLoggedIn, "true"); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	s.current = &u
	s.loggedIn = true
	return nil
}

// Register validates the payload, appends the new user to the ledger
// and logs the user in, all before returning. Validation failures leave
// every slot untouched.
func (s *Store) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.User{}, fmt.Errorf("%w: name is required", utils.ErrValidation)
	}
	if !emailPattern.MatchString(in.Email) {
		return models.User{}, fmt.Errorf("%w: malformed email", utils.ErrValidation)
	}
	if len(in.Password) < 6 {
		return models.User{}, fmt.Errorf("%w: password must be at least 6 characters", utils.ErrValidation)
	}
	if in.Password != in.PasswordConfirm {
		return models.User{}, fmt.Errorf("%w: passwords do not match", utils.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, in.Email) {
			return models.User{}, utils.ErrEmailAlreadyExists
		}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().Unix()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		ProfileImage: in.ProfileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ledger := append(append([]models.User(nil), s.users...), user)
	if err := s.persistLedger(ctx, ledger); err != nil {
		return models.User{}, err
	}
	if err := s.persistSession(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info("user registered", zap.String("userId", user.ID))
	return user, nil
}

// Login authenticates against the ledger and populates the session
// slots.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if err := utils.ComparePasswords(u.PasswordHash, password); err != nil {
			return models.User{}, utils.ErrInvalidCredentials
		}
		if err := s.persistSession(ctx, u); err != nil {
			return models.User{}, err
		}
		return u, nil
	}
	return models.User{}, utils.ErrInvalidCredentials
}

// Logout clears the session slots; the ledger is untouched.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slots.Delete(ctx, storage.SlotIsLoggedIn); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	if err := s.slots.Delete(ctx, storage.SlotUser); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	s.loggedIn = false
	s.current = nil
	return nil
}

// UpdateProfile merges the provided fields into the session user and
// its ledger entry.
func (s *Store) UpdateProfile(ctx context.Context, patch ProfilePatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn || s.current == nil {
		return models.User{}, utils.ErrNotAuthenticated
	}

	updated := *s.current
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return models.User{}, fmt.Errorf("%w: name cannot be empty", utils.ErrValidation)
		}
		updated.Name = *patch.Name
	}
	if patch.ProfileImage != nil {
		updated.ProfileImage = *patch.ProfileImage
	}
	updated.UpdatedAt = s.now().Unix()

	ledger := append([]models.User(nil), s.users...)
	for i := range ledger {
		if ledger[i].ID == updated.ID {
			ledger[i] = updated
		}
	}

	if err := s.persistLedger(ctx, ledger); err != nil {
		return models.User{}, err
	}
	if err := s.persistSession(ctx, updated); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

// ChangePassword verifies the current password before re-hashing.
func (s *Store) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", utils.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn || s.current == nil {
		return utils.ErrNotAuthenticated
	}
	if err := utils.ComparePasswords(s.current.PasswordHash, currentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	updated := *s.current
	updated.PasswordHash = hash
	updated.UpdatedAt = s.now().Unix()

	ledger := append([]models.User(nil), s.users...)
	for i := range ledger {
		if ledger[i].ID == updated.ID {
			ledger[i] = updated
		}
	}

	if err := s.persistLedger(ctx, ledger); err != nil {
		return err
	}
	return s.persistSession(ctx, updated)
}

// Withdraw deletes the account: every record the user owns goes first,
// then the ledger entry, then the session.
func (s *Store) Withdraw(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loggedIn || s.current == nil {
		return utils.ErrNotAuthenticated
	}
	userID := s.current.ID

	if err := s.records.DeleteRecordsByUser(ctx, userID); err != nil {
		return err
	}

	ledger := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID != userID {
			ledger = append(ledger, u)
		}
	}
	if err := s.persistLedger(ctx, ledger); err != nil {
		return err
	}

	if err := s.slots.Delete(ctx, storage.SlotIsLoggedIn); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	if err := s.slots.Delete(ctx, storage.SlotUser); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageWrite, err)
	}
	s.loggedIn = false
	s.current = nil

	s.log.Info("account withdrawn", zap.String("userId", userID))
	return nil
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loggedIn || s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// UserByID looks a user up in the ledger; used by the auth middleware
// to resolve token subjects.
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
