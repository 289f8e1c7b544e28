package skin

import (
	"math"
	"testing"

	"github.com/binzume/weightmirror/geom"
)

func TestMeshGroups(t *testing.T) {
	mesh := NewMesh("body")
	v0 := mesh.AddVertex(geom.Vector3{X: 1})
	v1 := mesh.AddVertex(geom.Vector3{X: 2})
	if v0.Index != 0 || v1.Index != 1 {
		t.Error("vertex index:", v0.Index, v1.Index)
	}
	if mesh.Vertex(2) != nil || mesh.Vertex(-1) != nil {
		t.Error("out of range vertex")
	}

	g := mesh.AddGroup("Arm_R")
	if mesh.AddGroup("Arm_R") != g {
		t.Error("AddGroup should return the existing group")
	}
	if mesh.Group("Arm_L") != nil {
		t.Error("unknown group should be nil")
	}
	mesh.AddGroup("Arm_L")
	if names := mesh.GroupNames(); len(names) != 2 || names[0] != "Arm_L" {
		t.Error("GroupNames:", names)
	}
	mesh.RemoveGroup("Arm_L")
	if mesh.Group("Arm_L") != nil {
		t.Error("RemoveGroup")
	}
}

func TestVertexGroupClamp(t *testing.T) {
	g := NewVertexGroup("Arm_R")
	g.Set(0, 1.5)
	g.Set(1, -0.5)
	g.Set(2, float32(math.NaN()))
	g.Set(3, 0.25)

	for i, want := range []float32{1, 0, 0, 0.25} {
		if w, ok := g.Weight(i); !ok || w != want {
			t.Error("Weight:", i, w, ok)
		}
	}
	g.Remove(0)
	if idx := g.Indices(); len(idx) != 3 || idx[0] != 1 || idx[2] != 3 {
		t.Error("Indices:", idx)
	}
	if g.Len() != 3 {
		t.Error("Len:", g.Len())
	}
}
