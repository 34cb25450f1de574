package domain

import "time"

// Project is a user-owned container of tasks. OwnerID is set once at
// creation and never reassigned.
type Project struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	CreatedAt   time.Time
}

// ProjectView is the read model returned to callers: the project row
// annotated with the owner's display name and its task count.
type ProjectView struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	OwnerName   string
	CreatedAt   time.Time
	TaskCount   int
}
