package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/hms-api/internal/model"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewStoreFromClient(client, time.Hour, zerolog.Nop()), mr
}

func testSession(token string) *model.Session {
	return &model.Session{
		Token: token,
		User: &model.User{
			Base:     model.Base{ID: uuid.New()},
			Username: "drsmith",
			RoleName: "Staff",
		},
		Menu: model.Menu{
			{Path: "admin/patients", Actions: model.Actions{View: true}},
		},
		BranchID:  uuid.New(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := testSession("tok-1")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.User.Username, got.User.Username)
	assert.Equal(t, sess.BranchID, got.BranchID)
	assert.Len(t, got.Menu, 1)
}

func TestGetUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetMalformedRecord(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// A corrupted record reads as "not logged in" and is removed.
	require.NoError(t, mr.Set("session:tok-bad", "{not json"))

	got, err := store.Get(ctx, "tok-bad")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("session:tok-bad"))
}

func TestDeleteSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("tok-2")))
	require.NoError(t, store.Delete(ctx, "tok-2"))

	got, err := store.Get(ctx, "tok-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveExpiredSession(t *testing.T) {
	store, _ := newTestStore(t)

	sess := testSession("tok-3")
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, store.Save(context.Background(), sess))
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("tok-4")))
	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "tok-4")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResetTokens(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StoreResetToken(ctx, userID, "reset-1", time.Now().Add(time.Hour)))

	got, err := store.ValidateResetToken(ctx, "reset-1")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, store.InvalidateResetToken(ctx, "reset-1"))
	_, err = store.ValidateResetToken(ctx, "reset-1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// Tokens expire on their own too.
	require.NoError(t, store.StoreResetToken(ctx, userID, "reset-2", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)
	_, err = store.ValidateResetToken(ctx, "reset-2")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestBranchSelection(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.BranchSelection(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	branchID := uuid.New()
	require.NoError(t, store.SaveBranchSelection(ctx, branchID))

	got, ok, err := store.BranchSelection(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, branchID, got)

	// Garbage in the key reads as no selection.
	require.NoError(t, mr.Set("branch:selected", "not-a-uuid"))
	_, ok, err = store.BranchSelection(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
