package geom

import (
	"fmt"
	"strings"
)

// Axis is a coordinate axis used as a mirror plane normal.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var axisNames = [...]string{"X", "Y", "Z"}

// ParseAxis accepts "x", "y" or "z" (case insensitive).
func ParseAxis(s string) (Axis, error) {
	for i, n := range axisNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown axis: %q", s)
}

func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Mirror returns a copy of v with the coordinate of this axis negated.
func (a Axis) Mirror(v *Vector3) *Vector3 {
	m := *v
	switch a {
	case AxisX:
		m.X = -m.X
	case AxisY:
		m.Y = -m.Y
	case AxisZ:
		m.Z = -m.Z
	}
	return &m
}
