package types

// VPC represents an AWS VPC
type VPC struct {
	ID        string
	Name      string
	CIDR      string
	State     string
	IsDefault bool
	OwnerID   string
}

// DisplayName returns the Name tag, falling back to the VPC ID
func (v VPC) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.ID
}
