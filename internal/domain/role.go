package domain

import "context"

// RoleCode is a user's authorization level.
type RoleCode string

const (
	RoleOwner  RoleCode = "owner"
	RoleAdmin  RoleCode = "admin"
	RoleMember RoleCode = "member"
	RoleGuest  RoleCode = "guest"
)

// RoleList is the persisted role document: two flat lists of user ids.
type RoleList struct {
	Admins  []int64 `json:"admins"`
	Members []int64 `json:"members"`
}

// HasAdmin reports whether id is in the admin list.
func (l *RoleList) HasAdmin(id int64) bool {
	for _, a := range l.Admins {
		if a == id {
			return true
		}
	}
	return false
}

// HasMember reports whether id is in the member list.
func (l *RoleList) HasMember(id int64) bool {
	for _, m := range l.Members {
		if m == id {
			return true
		}
	}
	return false
}

// RoleStore defines the interface for role persistence. Load must be called
// fresh on every authorization check; implementations must not cache.
type RoleStore interface {
	Load(ctx context.Context) (*RoleList, error)
	Save(ctx context.Context, roles *RoleList) error
}

// RoleGate resolves a user's role and guards role mutations.
type RoleGate interface {
	RoleOf(ctx context.Context, userID int64) RoleCode
	AddAdmin(ctx context.Context, actorID, userID int64) error
	AddMember(ctx context.Context, actorID, userID int64) error
}
