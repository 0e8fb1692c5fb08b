// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package access implements the ownership-based mutation policy. All
// "is owner or admin" decisions across posts, comments, and images flow
// through the single CanMutate predicate so the rule cannot drift between
// call sites. The one public-create exception (guest comment creation) is
// handled by the moderation service, not here.
package access

import (
	"github.com/google/uuid"

	"pressroom/internal/models"
)

// Actor is the authenticated identity (or lack thereof) making a request.
// Every service operation takes an Actor explicitly; there is no ambient
// request identity.
type Actor struct {
	ID        uuid.UUID
	Role      models.Role
	Anonymous bool
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{Anonymous: true}
}

// User returns an authenticated non-admin actor with the given id.
func User(id uuid.UUID) Actor {
	return Actor{ID: id, Role: models.RoleUser}
}

// Admin returns an authenticated admin actor with the given id.
func Admin(id uuid.UUID) Actor {
	return Actor{ID: id, Role: models.RoleAdmin}
}

// IsAdmin reports whether the actor is an authenticated admin.
func (a Actor) IsAdmin() bool {
	return !a.Anonymous && a.Role == models.RoleAdmin
}

// CanMutate decides whether the actor may mutate a resource owned by
// ownerID. Admins may always mutate, authenticated users may mutate their
// own resources, anonymous actors never may.
func CanMutate(a Actor, ownerID uuid.UUID) bool {
	if a.Anonymous {
		return false
	}
	if a.Role == models.RoleAdmin {
		return true
	}
	return a.ID == ownerID
}

// CanMutateOwnerless decides mutation rights for resources without an
// owner, such as guest comments. Only admins qualify.
func CanMutateOwnerless(a Actor) bool {
	return a.IsAdmin()
}
