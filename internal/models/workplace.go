package models

import "time"

// UserWorkplace represents a row of the user_workplaces membership table.
type UserWorkplace struct {
	UserID      string    `db:"user_id"`
	WorkplaceID string    `db:"workplace_id"`
	Role        string    `db:"role"`
	JoinedAt    time.Time `db:"joined_at"`
}
