package auth

// Capability predicates derived from an identity's role. These are pure
// functions of the identity: no hidden state, no network calls. Role checks
// are set membership; company_admin carries every manager capability as an
// explicit superset, not a hierarchy.

// HasRole reports whether the identity's role is in the allowed set.
// A nil identity never has a role.
func HasRole(id *Identity, allowed ...Role) bool {
	if id == nil {
		return false
	}
	for _, r := range allowed {
		if id.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity is a company admin.
func IsAdmin(id *Identity) bool {
	return HasRole(id, RoleCompanyAdmin)
}

// IsManagerOrAbove reports whether the identity is a manager or company admin.
func IsManagerOrAbove(id *Identity) bool {
	return HasRole(id, RoleManager, RoleCompanyAdmin)
}
