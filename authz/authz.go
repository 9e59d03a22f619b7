package authz

import (
	"restaurant-orders-api/models"
)

// Action enumerates every role-gated operation in the API
type Action string

const (
	ActionMenuWrite      Action = "menu:write"
	ActionCartUse        Action = "cart:use"
	ActionOrderCreate    Action = "order:create"
	ActionOrderUpdate    Action = "order:update"
	ActionOrderSetStatus Action = "order:set-status"
	ActionOrderDelete    Action = "order:delete"
	ActionGroupManage    Action = "groups:manage"
)

// Grant pairs a role with an action it may perform
type Grant struct {
	Role   models.Role
	Action Action
}

// grants is the authoritative permission table. Ownership is not
// expressed here: it is applied as a visibility filter on the query,
// so an out-of-scope resource reads as absent rather than forbidden.
var grants = []Grant{
	{models.RoleManager, ActionMenuWrite},
	{models.RoleManager, ActionOrderUpdate},
	{models.RoleManager, ActionOrderSetStatus},
	{models.RoleManager, ActionOrderDelete},
	{models.RoleManager, ActionGroupManage},

	{models.RoleDelivery, ActionOrderSetStatus},

	{models.RoleCustomer, ActionCartUse},
	{models.RoleCustomer, ActionOrderCreate},
}

// Build a lookup map for O(1) checks
var grantSet = func() map[Grant]bool {
	m := make(map[Grant]bool, len(grants))
	for _, g := range grants {
		m[g] = true
	}
	return m
}()

// Can reports whether a role may perform an action
func Can(role models.Role, action Action) bool {
	return grantSet[Grant{Role: role, Action: action}]
}

// Allowed returns every action granted to a role
func Allowed(role models.Role) []Action {
	var actions []Action
	for _, g := range grants {
		if g.Role == role {
			actions = append(actions, g.Action)
		}
	}
	return actions
}

// AllGrants returns the full permission table for documentation
func AllGrants() []Grant {
	return grants
}
