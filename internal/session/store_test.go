package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmark/internal/recordstore"
	"tripmark/internal/storage"
	"tripmark/pkg/utils"
)

func newTestSession(t *testing.T) (*Store, recordstore.Store, storage.SlotStore) {
	t.Helper()
	slots := storage.NewMemorySlotStore()
	records, err := recordstore.New(context.Background(), slots, zap.NewNop())
	require.NoError(t, err)
	s, err := New(context.Background(), slots, records, zap.NewNop())
	require.NoError(t, err)
	return s, records, slots
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:            "Demo Traveler",
		Email:           "demo@example.com",
		Password:        "hunter22",
		PasswordConfirm: "hunter22",
	}
}

func TestRegisterAutoLoginAndLedger(t *testing.T) {
	s, records, slots := newTestSession(t)
	ctx := context.Background()

	user, err := s.Register(ctx, registerInput())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	// auto-login populated the session
	assert.True(t, s.IsLoggedIn())
	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)

	// both slots written
	flag, found, err := slots.Get(ctx, storage.SlotIsLoggedIn)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "true", flag)
	_, found, err = slots.Get(ctx, storage.SlotUsers)
	require.NoError(t, err)
	assert.True(t, found)

	// a brand new user owns no records
	owned, err := records.GetRecordsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestRegisterValidation(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	cases := []struct {
		name string
		edit func(*RegisterInput)
	}{
		{"empty name", func(in *RegisterInput) { in.Name = "  " }},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "abc"; in.PasswordConfirm = "abc" }},
		{"password mismatch", func(in *RegisterInput) { in.PasswordConfirm = "different" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registerInput()
			tc.edit(&in)
			_, err := s.Register(ctx, in)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}

	// validation failures left everything untouched
	assert.False(t, s.IsLoggedIn())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.Register(ctx, registerInput())
	require.NoError(t, err)

	dup := registerInput()
	dup.Name = "Somebody Else"
	_, err = s.Register(ctx, dup)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLoginAndLogout(t *testing.T) {
	s, _, slots := newTestSession(t)
	ctx := context.Background()

	registered, err := s.Register(ctx, registerInput())
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsLoggedIn())

	_, err = s.Login(ctx, "demo@example.com", "wrong-password")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	user, err := s.Login(ctx, "demo@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.True(t, s.IsLoggedIn())

	require.NoError(t, s.Logout(ctx))
	_, found, err := slots.Get(ctx, storage.SlotIsLoggedIn)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = slots.Get(ctx, storage.SlotUser)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateProfilePersistsAcrossReload(t *testing.T) {
	s, records, slots := newTestSession(t)
	ctx := context.Background()

	_, err := s.Register(ctx, registerInput())
	require.NoError(t, err)

	name := "Seasoned Traveler"
	image := "https://example.com/me.png"
	updated, err := s.UpdateProfile(ctx, ProfilePatch{Name: &name, ProfileImage: &image})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, image, updated.ProfileImage)

	reloaded, err := New(ctx, slots, records, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, reloaded.IsLoggedIn())
	current, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, name, current.Name)

	ledgerUser, ok := reloaded.UserByID(updated.ID)
	require.True(t, ok)
	assert.Equal(t, name, ledgerUser.Name)
}

func TestChangePassword(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.Register(ctx, registerInput())
	require.NoError(t, err)

	err = s.ChangePassword(ctx, "wrong", "newpassword")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	require.NoError(t, s.ChangePassword(ctx, "hunter22", "newpassword"))
	require.NoError(t, s.Logout(ctx))

	_, err = s.Login(ctx, "demo@example.com", "hunter22")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = s.Login(ctx, "demo@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestWithdrawCascades(t *testing.T) {
	s, records, _ := newTestSession(t)
	ctx := context.Background()

	user, err := s.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = records.AddRecord(ctx, user.ID, recordstore.NewRecord{
		Title: "Alps Trip", Date: "2024-05-10",
	})
	require.NoError(t, err)

	require.NoError(t, s.Withdraw(ctx))

	assert.False(t, s.IsLoggedIn())
	_, ok := s.UserByID(user.ID)
	assert.False(t, ok)

	owned, err := records.GetRecordsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	// the email is free again
	_, err = s.Register(ctx, registerInput())
	assert.NoError(t, err)
}

func TestOperationsRequireSession(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	name := "x"
	_, err := s.UpdateProfile(ctx, ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, utils.ErrNotAuthenticated)
	assert.ErrorIs(t, s.ChangePassword(ctx, "a", "longenough"), utils.ErrNotAuthenticated)
	assert.ErrorIs(t, s.Withdraw(ctx), utils.ErrNotAuthenticated)
}
