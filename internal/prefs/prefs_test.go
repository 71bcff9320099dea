package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshoplabs/e-shop-backend/internal/storage"
)

func newTestScope() storage.Store {
	return storage.Scoped(storage.NewInMemoryStore(), "session:test:")
}

func TestDefaultsAreOff(t *testing.T) {
	s := NewStore(newTestScope())
	assert.Equal(t, State{}, s.State())
}

func TestOverlaysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestScope())

	on := true
	st := s.Apply(ctx, Update{CartOpen: &on})
	assert.True(t, st.CartOpen)
	assert.False(t, st.AuthOpen)

	st = s.Apply(ctx, Update{AuthOpen: &on})
	assert.True(t, st.CartOpen)
	assert.True(t, st.AuthOpen)

	off := false
	st = s.Apply(ctx, Update{CartOpen: &off})
	assert.False(t, st.CartOpen)
	assert.True(t, st.AuthOpen)
}

func TestThemeSurvivesReloadOverlaysDoNot(t *testing.T) {
	ctx := context.Background()
	scope := newTestScope()
	s := NewStore(scope)

	on := true
	s.Apply(ctx, Update{CartOpen: &on})
	st := s.ToggleTheme(ctx)
	assert.True(t, st.DarkMode)

	reloaded := NewStore(scope)
	assert.True(t, reloaded.DarkMode())
	assert.False(t, reloaded.State().CartOpen)
	assert.False(t, reloaded.State().AuthOpen)
}

func TestToggleFlips(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestScope())

	assert.True(t, s.ToggleTheme(ctx).DarkMode)
	assert.False(t, s.ToggleTheme(ctx).DarkMode)
}

func TestMalformedThemeBlobIsIgnored(t *testing.T) {
	ctx := context.Background()
	scope := newTestScope()
	require.NoError(t, scope.Set(ctx, StorageKey, []byte("{broken")))

	s := NewStore(scope)
	assert.False(t, s.DarkMode())
}
