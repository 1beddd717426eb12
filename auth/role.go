package auth

type Role string

const (
	RoleUser  = Role("user")
	RolePro   = Role("pro")
	RoleAdmin = Role("admin")
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RolePro, RoleAdmin:
		return true
	default:
		return false
	}
}

type PlanTier string

const (
	TierFree       = PlanTier("free")
	TierPro        = PlanTier("pro")
	TierEnterprise = PlanTier("enterprise")
)

func (t PlanTier) String() string {
	return string(t)
}

// RolesForTier maps a plan tier to its role set. The sets form a
// superset chain: admin implies pro implies user. Unrecognised tiers
// fall back to the least-privileged set rather than locking the
// account out entirely.
func RolesForTier(tier PlanTier) []Role {
	switch tier {
	case TierEnterprise:
		return []Role{RoleUser, RolePro, RoleAdmin}
	case TierPro:
		return []Role{RoleUser, RolePro}
	case TierFree:
		return []Role{RoleUser}
	default:
		return []Role{RoleUser}
	}
}

func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return names
}
