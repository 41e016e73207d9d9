// Package scene holds the node and transform types animated by the player.
package scene

import (
	"encoding/json"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-component vector.
// It encodes as {x, y, z} in YAML and JSON.
type Vec3 mgl64.Vec3

// V3 creates a Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// X returns the first component of v.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component of v.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component of v.
func (v Vec3) Z() float64 { return v[2] }

// Lerp returns v + t ⋅ (w - v).
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	a, b := mgl64.Vec3(v), mgl64.Vec3(w)
	return Vec3(a.Add(b.Sub(a).Mul(t)))
}

type xyz struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// MarshalYAML implements yaml.Marshaler.
func (v Vec3) MarshalYAML() (interface{}, error) {
	return xyz{v[0], v[1], v[2]}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vec3) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var c xyz
	if err := unmarshal(&c); err != nil {
		return err
	}
	*v = Vec3{c.X, c.Y, c.Z}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal(xyz{v[0], v[1], v[2]})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vec3) UnmarshalJSON(b []byte) error {
	var c xyz
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	*v = Vec3{c.X, c.Y, c.Z}
	return nil
}

// Transform is the local transform of a node.
type Transform struct {
	Position Vec3 `yaml:"position" json:"position"`
	Rotation Vec3 `yaml:"rotation" json:"rotation"`
	Scale    Vec3 `yaml:"scale" json:"scale"`
}

// Identity returns the transform of a node at rest.
func Identity() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Renderer triggers a render pass of the hosting scene.
type Renderer interface {
	Render()
}

// Node is a single node of a scene.
// It is safe for concurrent use.
type Node struct {
	Name string

	mu        sync.RWMutex
	transform Transform
}

// NewNode creates a node at the identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, transform: Identity()}
}

// Transform returns a copy of the node's transform.
func (n *Node) Transform() Transform {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transform
}

// SetTransform replaces the node's transform.
func (n *Node) SetTransform(t Transform) {
	n.mu.Lock()
	n.transform = t
	n.mu.Unlock()
}

// Position returns the node's position.
func (n *Node) Position() Vec3 { return n.Transform().Position }

// Rotation returns the node's Euler rotation in radians.
func (n *Node) Rotation() Vec3 { return n.Transform().Rotation }

// Scale returns the node's scale.
func (n *Node) Scale() Vec3 { return n.Transform().Scale }

// SetPosition sets the node's position.
func (n *Node) SetPosition(v Vec3) {
	n.mu.Lock()
	n.transform.Position = v
	n.mu.Unlock()
}

// SetRotation sets the node's rotation.
func (n *Node) SetRotation(v Vec3) {
	n.mu.Lock()
	n.transform.Rotation = v
	n.mu.Unlock()
}

// SetScale sets the node's scale.
func (n *Node) SetScale(v Vec3) {
	n.mu.Lock()
	n.transform.Scale = v
	n.mu.Unlock()
}
