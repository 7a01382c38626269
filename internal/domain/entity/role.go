// Package entity contains the core business objects of the project.
package entity

// Role represents the marketplace side an account acts on.
type Role string

const (
	// RoleVendor indicates a street-food vendor, the buying side.
	RoleVendor Role = "vendor"
	// RoleDistributor indicates a vegetable distributor, the selling side.
	RoleDistributor Role = "distributor"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleVendor, RoleDistributor:
		return true
	default:
		return false
	}
}
