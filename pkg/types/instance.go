package types

// InstanceState represents the lifecycle state of an EC2 instance
type InstanceState string

const (
	InstanceStatePending      InstanceState = "pending"
	InstanceStateRunning      InstanceState = "running"
	InstanceStateStopping     InstanceState = "stopping"
	InstanceStateStopped      InstanceState = "stopped"
	InstanceStateShuttingDown InstanceState = "shutting-down"
	InstanceStateTerminated   InstanceState = "terminated"
	InstanceStateUnknown      InstanceState = "unknown"
)

// Tag is a single key/value pair as returned by the cloud API. JSON keeps
// the cloud API field names.
type Tag struct {
	Key   string `json:"Key" yaml:"key"`
	Value string `json:"Value" yaml:"value"`
}

// Tags is an ordered tag list. Keys are not guaranteed to be unique.
type Tags []Tag

// Get returns the value of the first tag whose key matches exactly, or ""
func (t Tags) Get(key string) string {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

// Name returns the Name tag value
func (t Tags) Name() string {
	return t.Get("Name")
}

// RawInstance represents a compute instance exactly as fetched from EC2
type RawInstance struct {
	ID           string        `json:"instanceId" yaml:"instance_id"`
	State        InstanceState `json:"state" yaml:"state"`
	PublicIP     string        `json:"publicIp,omitempty" yaml:"public_ip,omitempty"`
	PrivateIP    string        `json:"privateIp,omitempty" yaml:"private_ip,omitempty"`
	InstanceType string        `json:"instanceType,omitempty" yaml:"instance_type,omitempty"`
	AZ           string        `json:"availabilityZone" yaml:"availability_zone"`
	Tags         Tags          `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsRunning returns true if the instance is running
func (i *RawInstance) IsRunning() bool {
	return i.State == InstanceStateRunning
}
