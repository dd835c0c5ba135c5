package auth

// Roles known to the service.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// CanAccess is the ownership policy: an admin may act on any resource, a
// regular user only on the resource whose id equals their own subject id.
// An empty resourceID means the operation does not address a specific
// resource. Any other role is denied.
//
// The same function backs both the role-gate middleware and the service
// layer, so the two enforcement points cannot drift apart.
func CanAccess(role, subjectID, resourceID string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleUser:
		return resourceID == "" || resourceID == subjectID
	default:
		return false
	}
}
