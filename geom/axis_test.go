package geom

import "testing"

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]Axis{"x": AxisX, "Y": AxisY, " z ": AxisZ} {
		a, err := ParseAxis(s)
		if err != nil {
			t.Fatal(s, err)
		}
		if a != want {
			t.Error("ParseAxis:", s, a)
		}
	}

	if _, err := ParseAxis("w"); err == nil {
		t.Error("ParseAxis should reject w")
	}
	if Axis(3).Valid() || Axis(-1).Valid() {
		t.Error("out of range axis is valid")
	}
	if AxisZ.String() != "Z" {
		t.Error("String:", AxisZ.String())
	}
}

func TestAxisMirror(t *testing.T) {
	v := NewVector3(1, 2, 3)
	if *AxisX.Mirror(v) != *NewVector3(-1, 2, 3) {
		t.Error("X:", AxisX.Mirror(v))
	}
	if *AxisY.Mirror(v) != *NewVector3(1, -2, 3) {
		t.Error("Y:", AxisY.Mirror(v))
	}
	if *AxisZ.Mirror(v) != *NewVector3(1, 2, -3) {
		t.Error("Z:", AxisZ.Mirror(v))
	}
	if *v != *NewVector3(1, 2, 3) {
		t.Error("Mirror modified its argument:", v)
	}
}
