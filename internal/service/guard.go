package service

import "chronicle/internal/models"

// requireAuthenticated rejects anonymous principals. It runs before any
// ownership check so an anonymous caller always sees UNAUTHENTICATED,
// never FORBIDDEN.
func requireAuthenticated(principal uint) error {
	if principal == 0 {
		return models.NewUnauthenticatedError("Authentication required")
	}
	return nil
}

// assertOwner rejects principals that do not own the resource.
func assertOwner(principal, ownerID uint, action string) error {
	if principal != ownerID {
		return models.NewForbiddenError(action)
	}
	return nil
}
