package admin

import (
	"errors"

	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/pkg"
)

var ErrInvalidRole = errors.New("invalid_role")

type UserStats struct {
	Total         int `json:"total"`
	Trainers      int `json:"trainers"`
	Admins        int `json:"admins"`
	RecentSignups int `json:"recentSignups"`
}

type ActivityStats struct {
	NutritionEntries int `json:"nutritionEntries"`
	TrackingEntries  int `json:"trackingEntries"`
	Workouts         int `json:"workouts"`
}

type Stats struct {
	Users    UserStats     `json:"users"`
	Activity ActivityStats `json:"activity"`
}

// UserFilter selects users for the admin listing. Search matches names,
// username and email case-insensitively.
type UserFilter struct {
	Page   int
	Limit  int
	Role   coaching.Role
	Search string
}

type UserPage struct {
	Users      []coaching.User `json:"users"`
	Pagination pkg.Pagination  `json:"pagination"`
}

type AuditPage struct {
	Logs       []audit.Log    `json:"logs"`
	Pagination pkg.Pagination `json:"pagination"`
}

// Actor is the admin performing a mutation and where the request came from.
type Actor struct {
	AdminID int64
	IP      string
}

func (a Actor) entry(action audit.Action) audit.Entry {
	return audit.Entry{
		AdminID: a.AdminID,
		Action:  action,
		IP:      a.IP,
	}
}
