package services

import (
	"context"
	"fmt"
	"log/slog"

	"schedulebot/internal/domain"
)

type roleGate struct {
	store   domain.RoleStore
	ownerID int64
	logger  *slog.Logger
}

// NewRoleGate returns a RoleGate reading the role store fresh on every check.
// ownerID is the single owner user id from configuration.
func NewRoleGate(store domain.RoleStore, ownerID int64, logger *slog.Logger) domain.RoleGate {
	return &roleGate{
		store:   store,
		ownerID: ownerID,
		logger:  logger,
	}
}

func (g *roleGate) RoleOf(ctx context.Context, userID int64) domain.RoleCode {
	if userID == g.ownerID {
		return domain.RoleOwner
	}
	roles, err := g.store.Load(ctx)
	if err != nil {
		g.logger.Warn("role store read failed, treating user as guest", "user_id", userID, "error", err)
		return domain.RoleGuest
	}
	if roles.HasAdmin(userID) {
		return domain.RoleAdmin
	}
	if roles.HasMember(userID) {
		return domain.RoleMember
	}
	return domain.RoleGuest
}

// AddAdmin grants admin to userID. Only the owner may do this. Adding an
// existing admin is a no-op.
func (g *roleGate) AddAdmin(ctx context.Context, actorID, userID int64) error {
	if actorID != g.ownerID {
		return domain.ErrAccessDenied
	}
	roles, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	if roles.HasAdmin(userID) {
		return nil
	}
	roles.Admins = append(roles.Admins, userID)
	if err := g.store.Save(ctx, roles); err != nil {
		return fmt.Errorf("save roles: %w", err)
	}
	return nil
}

// AddMember grants member to userID. Owner and admins may do this. Adding an
// existing member is a no-op.
func (g *roleGate) AddMember(ctx context.Context, actorID, userID int64) error {
	switch g.RoleOf(ctx, actorID) {
	case domain.RoleOwner, domain.RoleAdmin:
	default:
		return domain.ErrAccessDenied
	}
	roles, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	if roles.HasMember(userID) {
		return nil
	}
	roles.Members = append(roles.Members, userID)
	if err := g.store.Save(ctx, roles); err != nil {
		return fmt.Errorf("save roles: %w", err)
	}
	return nil
}
