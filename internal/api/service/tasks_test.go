package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/quollsoft/projecthub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	projects := &ProjectsService{Store: s}
	tasks := &TasksService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")
	project, err := projects.Create(ctx, alice.ID, "Travel Plans", "")
	require.NoError(t, err)

	due := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	created, err := tasks.Create(ctx, alice.ID, project.ID, "Book flight", &due)
	require.NoError(t, err)
	require.Equal(t, "Book flight", created.Title)
	require.Equal(t, "Travel Plans", created.ProjectTitle)
	require.False(t, created.Completed)
	require.NotNil(t, created.DueDate)

	t.Run("project task count moves 0 to 1", func(t *testing.T) {
		pv, err := projects.Get(ctx, project.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, 1, pv.TaskCount)
	})

	t.Run("round trip equality", func(t *testing.T) {
		got, err := tasks.Get(ctx, created.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("update completes the task and drops the due date", func(t *testing.T) {
		updated, err := tasks.Update(ctx, created.ID, alice.ID, "Book flight", nil, true)
		require.NoError(t, err)
		require.True(t, updated.Completed)
		require.Nil(t, updated.DueDate)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		deleted, err := tasks.Delete(ctx, created.ID, alice.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		deleted, err = tasks.Delete(ctx, created.ID, alice.ID)
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestTaskCreateDeniedOnForeignProject(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	projects := &ProjectsService{Store: s}
	tasks := &TasksService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")
	bob := addUser(t, s, "Bob", "Reyes", "bob@example.com")

	foreign, err := projects.Create(ctx, bob.ID, "Bob's Project", "")
	require.NoError(t, err)

	_, err = tasks.Create(ctx, alice.ID, foreign.ID, "Sneaky task", nil)
	require.ErrorIs(t, err, ErrAccessDenied)

	// same answer for a project that never existed
	_, err = tasks.Create(ctx, alice.ID, idx.New().String(), "Ghost task", nil)
	require.ErrorIs(t, err, ErrAccessDenied)

	t.Run("no row side effect", func(t *testing.T) {
		got, err := tasks.ListByProject(ctx, foreign.ID, bob.ID)
		require.NoError(t, err)
		require.Empty(t, got)

		pv, err := projects.Get(ctx, foreign.ID, bob.ID)
		require.NoError(t, err)
		require.Zero(t, pv.TaskCount)
	})
}

func TestTaskCrossTenantInvisibility(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	projects := &ProjectsService{Store: s}
	tasks := &TasksService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")
	bob := addUser(t, s, "Bob", "Reyes", "bob@example.com")

	project, err := projects.Create(ctx, bob.ID, "Bob's Project", "")
	require.NoError(t, err)
	task, err := tasks.Create(ctx, bob.ID, project.ID, "Bob's task", nil)
	require.NoError(t, err)

	_, err = tasks.Get(ctx, task.ID, alice.ID)
	require.ErrorIs(t, err, ErrAccessDenied)

	got, err := tasks.ListByProject(ctx, project.ID, alice.ID)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = tasks.Update(ctx, task.ID, alice.ID, "Hijacked", nil, true)
	require.ErrorIs(t, err, ErrAccessDenied)

	deleted, err := tasks.Delete(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	t.Run("owner unaffected", func(t *testing.T) {
		got, err := tasks.Get(ctx, task.ID, bob.ID)
		require.NoError(t, err)
		require.Equal(t, "Bob's task", got.Title)
		require.False(t, got.Completed)
	})
}

func TestTaskTitleValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	projects := &ProjectsService{Store: s}
	tasks := &TasksService{Store: s}

	alice := addUser(t, s, "Alice", "Nguyen", "alice@example.com")
	project, err := projects.Create(ctx, alice.ID, "Travel Plans", "")
	require.NoError(t, err)

	var verr *ValidationError

	_, err = tasks.Create(ctx, alice.ID, project.ID, "", nil)
	require.ErrorAs(t, err, &verr)

	_, err = tasks.Create(ctx, alice.ID, project.ID, strings.Repeat("x", 201), nil)
	require.ErrorAs(t, err, &verr)

	_, err = tasks.Create(ctx, alice.ID, project.ID, strings.Repeat("x", 200), nil)
	require.NoError(t, err)
}
