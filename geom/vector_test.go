package geom

import (
	"math"
	"testing"
)

func TestVector3(t *testing.T) {
	zero := NewVector3(0, 0, 0)
	if zero.Len() != 0 || zero.LenSqr() != 0 {
		t.Error("len != 0")
	}

	if *NewVector3(1, 0, 0).Add(NewVector3(0, 1, 0)) != *NewVector3(1, 1, 0) {
		t.Error("Vector.Add()")
	}

	if *NewVector3(1, 2, 3).Sub(NewVector3(1, 1, 1)) != *NewVector3(0, 1, 2) {
		t.Error("Vector.Sub()")
	}

	if NewVector3(3, 4, 0).Len() != 5 {
		t.Error("Vector.Len()", NewVector3(3, 4, 0).Len())
	}
}

func TestVector3Distance(t *testing.T) {
	const eps = 0.000001

	d := NewVector3(-1, 0, 0).Distance(NewVector3(1, 0, 0))
	if math.Abs(d-2) > eps {
		t.Error("Distance: ", d)
	}

	v := NewVector3FromArray([3]Element{1, 2, 3}).Vec()
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Error("Vec: ", v)
	}
}
