// Package skin mirrors bone weights of a skinned mesh across a coordinate plane.
package skin

import (
	"math"
	"sort"

	"github.com/binzume/weightmirror/geom"
)

type Vertex struct {
	Index int
	Pos   geom.Vector3
}

// VertexGroup holds the influence of a single bone. Weights maps vertex index to weight.
type VertexGroup struct {
	Name    string
	Weights map[int]float32
}

func NewVertexGroup(name string) *VertexGroup {
	return &VertexGroup{Name: name, Weights: map[int]float32{}}
}

func (g *VertexGroup) Weight(index int) (float32, bool) {
	w, ok := g.Weights[index]
	return w, ok
}

// Set stores w clamped to [0,1].
func (g *VertexGroup) Set(index int, w float32) {
	if g.Weights == nil {
		g.Weights = map[int]float32{}
	}
	g.Weights[index] = clampWeight(w)
}

func (g *VertexGroup) Remove(index int) {
	delete(g.Weights, index)
}

func (g *VertexGroup) Len() int {
	return len(g.Weights)
}

// Indices returns weighted vertex indices in ascending order.
func (g *VertexGroup) Indices() []int {
	return sortedIndices(g.Weights)
}

// replace swaps in a new weight table. The group itself is kept so references to it stay valid.
func (g *VertexGroup) replace(weights map[int]float32) {
	g.Weights = weights
}

func clampWeight(w float32) float32 {
	if w > 1 {
		return 1
	}
	if w > 0 {
		return w
	}
	// negative or NaN
	return 0
}

func sortedIndices(weights map[int]float32) []int {
	indices := make([]int, 0, len(weights))
	for i := range weights {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

type Mesh struct {
	Name     string
	Vertices []*Vertex
	Groups   map[string]*VertexGroup
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, Groups: map[string]*VertexGroup{}}
}

// AddVertex appends a vertex and assigns it the next index.
func (m *Mesh) AddVertex(pos geom.Vector3) *Vertex {
	v := &Vertex{Index: len(m.Vertices), Pos: pos}
	m.Vertices = append(m.Vertices, v)
	return v
}

func (m *Mesh) Vertex(index int) *Vertex {
	if index < 0 || index >= len(m.Vertices) {
		return nil
	}
	return m.Vertices[index]
}

// Group returns nil if the mesh has no group for the bone.
func (m *Mesh) Group(name string) *VertexGroup {
	return m.Groups[name]
}

// AddGroup returns the existing group if name is already used.
func (m *Mesh) AddGroup(name string) *VertexGroup {
	if g, ok := m.Groups[name]; ok {
		return g
	}
	if m.Groups == nil {
		m.Groups = map[string]*VertexGroup{}
	}
	g := NewVertexGroup(name)
	m.Groups[name] = g
	return g
}

func (m *Mesh) RemoveGroup(name string) {
	delete(m.Groups, name)
}

func (m *Mesh) GroupNames() []string {
	names := make([]string, 0, len(m.Groups))
	for n := range m.Groups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isZeroWeight(w float32) bool {
	return w == 0 || math.IsNaN(float64(w))
}
