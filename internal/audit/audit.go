package audit

import (
	"context"
	"time"
)

type Action string

const (
	ActionAdminLogin     Action = "admin.login"
	ActionAdminCreate    Action = "admin.create"
	ActionRoleUpdate     Action = "user.role.update"
	ActionUserDelete     Action = "user.delete"
	ActionTrainerApprove Action = "trainer.approve"
	ActionTrainerReject  Action = "trainer.reject"
)

const targetTypeUser = "user"

// Entry is one admin action about to be recorded.
type Entry struct {
	AdminID    int64
	Action     Action
	TargetID   *int64
	TargetType *string
	Details    map[string]any
	IP         string
}

// OnUser returns the entry targeting the given user.
func (e Entry) OnUser(userID int64) Entry {
	targetType := targetTypeUser
	e.TargetID = &userID
	e.TargetType = &targetType
	return e
}

type Actor struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

// Log is a stored audit entry. Admin is nil once the acting admin is deleted.
type Log struct {
	ID         int64          `json:"id"`
	AdminID    *int64         `json:"admin_id"`
	Admin      *Actor         `json:"admin"`
	Action     string         `json:"action"`
	TargetID   *int64         `json:"target_id"`
	TargetType *string        `json:"target_type"`
	Details    map[string]any `json:"details"`
	IPAddress  *string        `json:"ip_address"`
	CreatedAt  time.Time      `json:"created_at"`
}

type Filter struct {
	Page    int
	Limit   int
	AdminID *int64
	Action  string
}

// Recorder persists audit entries.
type Recorder interface {
	AddAuditLog(ctx context.Context, entry Entry) error
}
