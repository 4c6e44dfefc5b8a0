package types

import (
	"encoding/json"
	"time"
)

// NodeKind discriminates the Node variants in serialized output
type NodeKind string

const (
	NodeKindLoadBalancer NodeKind = "loadBalancer"
	NodeKindZoneGroup    NodeKind = "zoneGroup"
	NodeKindInstance     NodeKind = "instance"
)

// Position is a 2-D layout coordinate
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a topology graph node. The set of implementations is closed:
// LoadBalancerNode, ZoneGroupNode and InstanceNode.
type Node interface {
	NodeID() string
	Kind() NodeKind
	Pos() Position
	isNode()
}

// LoadBalancerNode is the entry point of a tier
type LoadBalancerNode struct {
	ID       string   `json:"id" yaml:"id"`
	ARN      string   `json:"arn" yaml:"arn"`
	Label    string   `json:"label" yaml:"label"`
	DNSName  string   `json:"dnsName" yaml:"dns_name"`
	Role     Role     `json:"role" yaml:"role"`
	State    string   `json:"state" yaml:"state"`
	Position Position `json:"position" yaml:"position"`
}

// ZoneGroupNode groups all instances of one tier in one availability zone
type ZoneGroupNode struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	AZ       string   `json:"availabilityZone" yaml:"availability_zone"`
	Tier     Tier     `json:"tier" yaml:"tier"`
	Members  []string `json:"members" yaml:"members"`
	Height   float64  `json:"groupHeight" yaml:"group_height"`
	Position Position `json:"position" yaml:"position"`
}

// InstanceNode is a single classified instance
type InstanceNode struct {
	ID         string        `json:"id" yaml:"id"`
	InstanceID string        `json:"instanceId" yaml:"instance_id"`
	Tier       Tier          `json:"tier" yaml:"tier"`
	Label      string        `json:"label" yaml:"label"`
	State      InstanceState `json:"state" yaml:"state"`
	Status     bool          `json:"status" yaml:"status"`
	PublicIP   string        `json:"publicIp,omitempty" yaml:"public_ip,omitempty"`
	PrivateIP  string        `json:"privateIp,omitempty" yaml:"private_ip,omitempty"`
	Type       string        `json:"instanceType,omitempty" yaml:"instance_type,omitempty"`
	AZ         string        `json:"availabilityZone" yaml:"availability_zone"`
	Position   Position      `json:"position" yaml:"position"`
}

func (n LoadBalancerNode) NodeID() string { return n.ID }
func (n LoadBalancerNode) Kind() NodeKind { return NodeKindLoadBalancer }
func (n LoadBalancerNode) Pos() Position  { return n.Position }
func (LoadBalancerNode) isNode()          {}

// Healthy returns true if the load balancer reports the active state
func (n LoadBalancerNode) Healthy() bool { return n.State == "active" }

func (n ZoneGroupNode) NodeID() string { return n.ID }
func (n ZoneGroupNode) Kind() NodeKind { return NodeKindZoneGroup }
func (n ZoneGroupNode) Pos() Position  { return n.Position }
func (ZoneGroupNode) isNode()          {}

func (n InstanceNode) NodeID() string { return n.ID }
func (n InstanceNode) Kind() NodeKind { return NodeKindInstance }
func (n InstanceNode) Pos() Position  { return n.Position }
func (InstanceNode) isNode()          {}

// Healthy returns the derived instance status
func (n InstanceNode) Healthy() bool { return n.Status }

// MarshalJSON adds the kind discriminator
func (n LoadBalancerNode) MarshalJSON() ([]byte, error) {
	type plain LoadBalancerNode
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		plain
	}{n.Kind(), plain(n)})
}

// MarshalJSON adds the kind discriminator
func (n ZoneGroupNode) MarshalJSON() ([]byte, error) {
	type plain ZoneGroupNode
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		plain
	}{n.Kind(), plain(n)})
}

// MarshalJSON adds the kind discriminator
func (n InstanceNode) MarshalJSON() ([]byte, error) {
	type plain InstanceNode
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		plain
	}{n.Kind(), plain(n)})
}

// MarshalYAML adds the kind discriminator
func (n LoadBalancerNode) MarshalYAML() (interface{}, error) {
	type plain LoadBalancerNode
	return struct {
		Kind  NodeKind `yaml:"kind"`
		plain `yaml:",inline"`
	}{n.Kind(), plain(n)}, nil
}

// MarshalYAML adds the kind discriminator
func (n ZoneGroupNode) MarshalYAML() (interface{}, error) {
	type plain ZoneGroupNode
	return struct {
		Kind  NodeKind `yaml:"kind"`
		plain `yaml:",inline"`
	}{n.Kind(), plain(n)}, nil
}

// MarshalYAML adds the kind discriminator
func (n InstanceNode) MarshalYAML() (interface{}, error) {
	type plain InstanceNode
	return struct {
		Kind  NodeKind `yaml:"kind"`
		plain `yaml:",inline"`
	}{n.Kind(), plain(n)}, nil
}

// Edge is a directed connection between two nodes
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// ID returns a stable identifier for the edge
func (e Edge) ID() string {
	return "e-" + e.Source + "-" + e.Target
}

// Graph is the full node/edge set of one topology
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node returns the node with the given ID
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.NodeID() == id {
			return n, true
		}
	}
	return nil, false
}

// CountByKind returns the number of nodes of each kind
func (g Graph) CountByKind() map[NodeKind]int {
	counts := make(map[NodeKind]int, 3)
	for _, n := range g.Nodes {
		counts[n.Kind()]++
	}
	return counts
}

// IsEmpty returns true if the graph has neither nodes nor edges
func (g Graph) IsEmpty() bool {
	return len(g.Nodes) == 0 && len(g.Edges) == 0
}

// PollResult is the unit handed to presentation after a successful cycle
type PollResult struct {
	VPCID     string    `json:"vpcId" yaml:"vpc_id"`
	Graph     `yaml:",inline"`
	FetchedAt time.Time `json:"fetchedAt" yaml:"fetched_at"`
}
