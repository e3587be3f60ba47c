package auth

import "github.com/matias-dev/api-rest/internal/app/models"

// Policy names an access rule an endpoint enforces.
type Policy int

const (
	// PolicySelfOrAdmin allows the resource owner or an admin.
	PolicySelfOrAdmin Policy = iota
	// PolicyAdminOnly allows admins only.
	PolicyAdminOnly
)

// Authorize decides whether a request with the given role and subject may act
// on the resource owned by targetID. The decision is total over the Rol enum:
// RolUnknown (absent or unparsable role) always denies.
func Authorize(rol models.Rol, subjectID, targetID string, policy Policy) bool {
	switch policy {
	case PolicyAdminOnly:
		return rol == models.RolAdmin
	case PolicySelfOrAdmin:
		if rol == models.RolAdmin {
			return true
		}
		return rol == models.RolUser && subjectID != "" && subjectID == targetID
	default:
		return false
	}
}
