package service

import "stroymonitor/internal/entity"

// Authorize reports whether the profile holds the required role. It is
// applied after session validation and before any admin-only action.
func Authorize(profile *Profile, required entity.UserRole) bool {
	return profile != nil && profile.Role == required
}
