package store

import (
	"context"
	"errors"
	"time"

	"github.com/quollsoft/projecthub/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Every Projects/Tasks method takes the requesting user's id
// and bakes it into the lookup predicate, so a row the caller does not own
// is indistinguishable from a row that does not exist.
type Store interface {
	Users() Users
	Projects() Projects
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Prefer this over Tx for multi-step operations
	// that must be atomic (e.g. the owned-project check before task insert).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-email checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error
}

type Projects interface {
	// ListByOwner returns every project owned by ownerID, annotated with
	// the owner's display name and task count, ordered by creation time.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ProjectView, error)

	// GetByID returns the project only when ownerID owns it; otherwise
	// ErrNotFound, whether the row exists or not.
	GetByID(ctx context.Context, projectID, ownerID string) (domain.ProjectView, error)

	// CreateProject inserts a new project row.
	CreateProject(ctx context.Context, p domain.Project) error

	// UpdateProject mutates title/description where id AND owner match;
	// ErrNotFound when no row matched.
	UpdateProject(ctx context.Context, projectID, ownerID, title, description string) error

	// DeleteProject removes the row where id AND owner match. Reports
	// whether a row was deleted; never errors on a miss. Tasks cascade.
	DeleteProject(ctx context.Context, projectID, ownerID string) (bool, error)
}

type Tasks interface {
	// ListByProject joins tasks to their project and filters on the
	// project's owner. A foreign project yields an empty slice.
	ListByProject(ctx context.Context, projectID, ownerID string) ([]domain.TaskView, error)

	// GetByID returns the task only when ownerID owns the parent project.
	GetByID(ctx context.Context, taskID, ownerID string) (domain.TaskView, error)

	// CreateTask inserts a new task row. Callers must have verified
	// project ownership first (see service.TasksService.Create).
	CreateTask(ctx context.Context, t domain.Task) error

	// UpdateTask mutates the task where the ownership join matches;
	// ErrNotFound when no row matched.
	UpdateTask(ctx context.Context, taskID, ownerID, title string, dueDate *time.Time, completed bool) error

	// DeleteTask removes the task where the ownership join matches.
	DeleteTask(ctx context.Context, taskID, ownerID string) (bool, error)
}
