package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/store"
	"github.com/quollsoft/projecthub/internal/api/store/drivers/sqlite"
	"github.com/quollsoft/projecthub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func addUser(t *testing.T, s store.Store, first, last, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ProjectsService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")

	created, err := svc.Create(ctx, alice.ID, "Website Redesign", "refresh the landing page")
	require.NoError(t, err)
	require.Equal(t, "Website Redesign", created.Title)
	require.Equal(t, "Alice Nguyen", created.OwnerName)
	require.Zero(t, created.TaskCount)

	t.Run("round trip equality", func(t *testing.T) {
		got, err := svc.Get(ctx, created.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, alice.ID, "Website Redesign v2", "")
		require.NoError(t, err)
		require.Equal(t, "Website Redesign v2", updated.Title)
		require.Empty(t, updated.Description)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		deleted, err := svc.Delete(ctx, created.ID, alice.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		deleted, err = svc.Delete(ctx, created.ID, alice.ID)
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestProjectCrossTenantInvisibility(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ProjectsService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")
	bob := addUser(t, s, "Bob", "Reyes", "bob@example.com")

	theirs, err := svc.Create(ctx, bob.ID, "Secret Launch", "")
	require.NoError(t, err)

	t.Run("list stays empty", func(t *testing.T) {
		got, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("get, update, delete all read as access denied or miss", func(t *testing.T) {
		_, err := svc.Get(ctx, theirs.ID, alice.ID)
		require.ErrorIs(t, err, ErrAccessDenied)

		// indistinguishable from an id that never existed
		_, err = svc.Get(ctx, idx.New().String(), alice.ID)
		require.ErrorIs(t, err, ErrAccessDenied)

		_, err = svc.Update(ctx, theirs.ID, alice.ID, "Hijacked", "")
		require.ErrorIs(t, err, ErrAccessDenied)

		deleted, err := svc.Delete(ctx, theirs.ID, alice.ID)
		require.NoError(t, err)
		require.False(t, deleted)
	})

	t.Run("owner still sees the original", func(t *testing.T) {
		got, err := svc.Get(ctx, theirs.ID, bob.ID)
		require.NoError(t, err)
		require.Equal(t, "Secret Launch", got.Title)
	})
}

func TestProjectTitleBoundaries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ProjectsService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")

	cases := []struct {
		name  string
		title string
		ok    bool
	}{
		{"empty", "", false},
		{"two runes", "ab", false},
		{"three runes", "abc", true},
		{"hundred runes", strings.Repeat("x", 100), true},
		{"hundred and one runes", strings.Repeat("x", 101), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, alice.ID, tc.title, "")
			if tc.ok {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	t.Run("overlong description", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, "Fine title", strings.Repeat("d", 501))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestProjectListOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ProjectsService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := svc.Create(ctx, alice.ID, title, "")
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "First", got[0].Title)
	require.Equal(t, "Second", got[1].Title)
	require.Equal(t, "Third", got[2].Title)
}
