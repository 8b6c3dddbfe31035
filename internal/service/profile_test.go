package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akulikov/winslog/internal/repository"
	"github.com/akulikov/winslog/internal/service"
)

func newTestProfiles(t *testing.T) (*service.ProfileService, *repository.Memory) {
	t.Helper()
	store := repository.NewMemory()
	svc := service.NewProfileService(store, zap.NewNop())
	svc.Load(context.Background())
	return svc, store
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestProfiles(t)
	ctx := context.Background()

	alex, err := svc.Create(ctx, "Alex", "🦊", "")
	require.NoError(t, err)
	sam, err := svc.Create(ctx, "Sam", "🐙", "1234")
	require.NoError(t, err)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, alex.ID, list[0].ID)
	assert.Equal(t, sam.ID, list[1].ID)
	assert.NotEqual(t, alex.ID, sam.ID)
}

func TestActivate_NoPIN(t *testing.T) {
	svc, _ := newTestProfiles(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Alex", "🦊", "")
	require.NoError(t, err)

	require.NoError(t, svc.Activate(ctx, p.ID, ""))
	assert.Equal(t, p.ID, svc.ActiveID())
}

func TestActivate_WrongPIN(t *testing.T) {
	svc, _ := newTestProfiles(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Sam", "🐙", "1234")
	require.NoError(t, err)

	err = svc.Activate(ctx, p.ID, "0000")
	assert.ErrorIs(t, err, service.ErrWrongPIN)
	assert.Empty(t, svc.ActiveID())

	require.NoError(t, svc.Activate(ctx, p.ID, "1234"))
	assert.Equal(t, p.ID, svc.ActiveID())
}

func TestActivate_UnknownProfile(t *testing.T) {
	svc, _ := newTestProfiles(t)

	err := svc.Activate(context.Background(), "missing", "")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestDeactivate(t *testing.T) {
	svc, _ := newTestProfiles(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Alex", "🦊", "")
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, p.ID, ""))

	svc.Deactivate(ctx)
	assert.Empty(t, svc.ActiveID())
}

func TestDelete_RemovesBucketAndClearsActive(t *testing.T) {
	svc, store := newTestProfiles(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Alex", "🦊", "")
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, p.ID, ""))
	require.NoError(t, store.Set(ctx, repository.EntriesKey(p.ID), []byte(`{"version":1,"entries":[]}`)))

	require.NoError(t, svc.Delete(ctx, p.ID))

	assert.Empty(t, svc.List())
	assert.Empty(t, svc.ActiveID())
	_, err = store.Get(ctx, repository.EntriesKey(p.ID))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_UnknownProfileIsNoOp(t *testing.T) {
	svc, _ := newTestProfiles(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alex", "🦊", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "missing"))
	assert.Len(t, svc.List(), 1)
}

func TestLoad_RestoresAcrossRestart(t *testing.T) {
	svc, store := newTestProfiles(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Sam", "🐙", "1234")
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, p.ID, "1234"))

	restarted := service.NewProfileService(store, zap.NewNop())
	restarted.Load(ctx)

	list := restarted.List()
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, "Sam", list[0].Name)
	assert.Equal(t, "1234", list[0].PIN)
	assert.Equal(t, p.ID, restarted.ActiveID())
}

func TestLoad_CorruptBucketFallsBackToEmpty(t *testing.T) {
	store := repository.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.ProfilesKey, []byte("garbage")))

	svc := service.NewProfileService(store, zap.NewNop())
	svc.Load(ctx)

	assert.Empty(t, svc.List())
	assert.Empty(t, svc.ActiveID())
}

func TestLoad_DropsDanglingActiveID(t *testing.T) {
	store := repository.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.ProfilesKey, []byte(`{"version":1,"profiles":[]}`)))
	require.NoError(t, store.Set(ctx, repository.ActiveProfileKey, []byte("gone")))

	svc := service.NewProfileService(store, zap.NewNop())
	svc.Load(ctx)

	assert.Empty(t, svc.ActiveID())
}
