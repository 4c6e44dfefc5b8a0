package types

// Tier is one of the two application layers drawn on the graph
type Tier string

const (
	TierWeb      Tier = "web"
	TierApp      Tier = "app"
	TierExcluded Tier = "excluded"
)

// Role marks a load balancer as the entry point of a tier
type Role string

const (
	RoleWebFront Role = "web-front"
	RoleAppFront Role = "app-front"
	RoleExcluded Role = "excluded"
)

// Tier returns the tier fronted by the role
func (r Role) Tier() Tier {
	switch r {
	case RoleWebFront:
		return TierWeb
	case RoleAppFront:
		return TierApp
	default:
		return TierExcluded
	}
}

// ClassifiedInstance is a RawInstance with its tier resolved
type ClassifiedInstance struct {
	RawInstance `yaml:",inline"`
	Tier Tier   `json:"tier" yaml:"tier"`
	Name string `json:"name" yaml:"name"`
}

// ClassifiedLoadBalancer is a RawLoadBalancer with its role resolved
type ClassifiedLoadBalancer struct {
	RawLoadBalancer `yaml:",inline"`
	Role Role   `json:"role" yaml:"role"`
	Name string `json:"name" yaml:"name"`
}
