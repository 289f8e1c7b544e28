package skin

import (
	"math"

	"github.com/binzume/weightmirror/geom"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// MirrorIndex finds the vertex lying at the mirrored position of a point.
// It is built once over a snapshot of vertex positions and is safe for concurrent queries.
type MirrorIndex struct {
	axis    geom.Axis
	epsilon float64
	tree    *kdtree.Tree
	size    int
}

func NewMirrorIndex(vertices []*Vertex, axis geom.Axis, epsilon float64) *MirrorIndex {
	points := make(vertexPoints, 0, len(vertices))
	for _, v := range vertices {
		points = append(points, vertexPoint{pos: v.Pos.Vec(), index: v.Index})
	}
	idx := &MirrorIndex{axis: axis, epsilon: epsilon, size: len(points)}
	if len(points) > 0 {
		idx.tree = kdtree.New(points, false)
	}
	return idx
}

func (idx *MirrorIndex) Axis() geom.Axis {
	return idx.axis
}

func (idx *MirrorIndex) Epsilon() float64 {
	return idx.epsilon
}

// FindMirror reflects pos across the index axis and returns the nearest vertex,
// provided it is closer than epsilon to the reflected point.
func (idx *MirrorIndex) FindMirror(pos geom.Vector3) (int, bool) {
	if idx.tree == nil {
		return -1, false
	}
	q := vertexPoint{pos: idx.axis.Mirror(&pos).Vec(), index: -1}
	nearest, distSqr := idx.tree.Nearest(q)
	if nearest == nil {
		return -1, false
	}
	if !(math.Sqrt(distSqr) < idx.epsilon) {
		return -1, false
	}
	return nearest.(vertexPoint).index, true
}

// vertexPoint implements kdtree.Comparable.
type vertexPoint struct {
	pos   r3.Vec
	index int
}

func (p vertexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertexPoint)
	return coord(p.pos, d) - coord(q.pos, d)
}

func (p vertexPoint) Dims() int { return 3 }

// Distance returns the squared distance, as kdtree expects.
func (p vertexPoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(p.pos, c.(vertexPoint).pos))
}

func coord(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// vertexPoints implements kdtree.Interface.
type vertexPoints []vertexPoint

func (p vertexPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p vertexPoints) Len() int                      { return len(p) }
func (p vertexPoints) Pivot(d kdtree.Dim) int {
	return vertexPlane{vertexPoints: p, dim: d}.Pivot()
}
func (p vertexPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type vertexPlane struct {
	vertexPoints
	dim kdtree.Dim
}

func (p vertexPlane) Less(i, j int) bool {
	return coord(p.vertexPoints[i].pos, p.dim) < coord(p.vertexPoints[j].pos, p.dim)
}
func (p vertexPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfRandoms(p, 100)) }
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertexPoints = p.vertexPoints[start:end]
	return p
}
func (p vertexPlane) Swap(i, j int) {
	p.vertexPoints[i], p.vertexPoints[j] = p.vertexPoints[j], p.vertexPoints[i]
}
