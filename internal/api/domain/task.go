package domain

import "time"

// Task belongs to exactly one project and has no owner of its own; its
// effective owner is always the parent project's owner.
type Task struct {
	ID        string
	Title     string
	DueDate   *time.Time
	Completed bool
	ProjectID string
	CreatedAt time.Time
}

// TaskView is the read model returned to callers, annotated with the parent
// project's title.
type TaskView struct {
	ID           string
	Title        string
	DueDate      *time.Time
	Completed    bool
	ProjectID    string
	ProjectTitle string
	CreatedAt    time.Time
}
