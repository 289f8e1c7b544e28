package gltfutil

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const (
	AttrPosition = "POSITION"
	AttrJoints   = "JOINTS_0"
	AttrWeights  = "WEIGHTS_0"
)

var ErrSparseAccessor = errors.New("sparse accessor is not supported")

func accessor(doc *gltf.Document, index uint32) (*gltf.Accessor, error) {
	if int(index) >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	acr := doc.Accessors[index]
	if acr.Sparse != nil {
		return nil, fmt.Errorf("accessor %d: %w", index, ErrSparseAccessor)
	}
	return acr, nil
}

// IsSkinned reports whether the primitive has positions, joints and weights.
func IsSkinned(prim *gltf.Primitive) bool {
	for _, attr := range []string{AttrPosition, AttrJoints, AttrWeights} {
		if _, ok := prim.Attributes[attr]; !ok {
			return false
		}
	}
	return true
}

func ReadPositions(doc *gltf.Document, index uint32) ([][3]float32, error) {
	acr, err := accessor(doc, index)
	if err != nil {
		return nil, err
	}
	return modeler.ReadPosition(doc, acr, [][3]float32{})
}

// ReadSkinWeights reads JOINTS_0 and WEIGHTS_0 of a skinned primitive.
func ReadSkinWeights(doc *gltf.Document, prim *gltf.Primitive) ([][4]uint16, [][4]float32, error) {
	if !IsSkinned(prim) {
		return nil, nil, errors.New("primitive is not skinned")
	}
	jacr, err := accessor(doc, prim.Attributes[AttrJoints])
	if err != nil {
		return nil, nil, err
	}
	wacr, err := accessor(doc, prim.Attributes[AttrWeights])
	if err != nil {
		return nil, nil, err
	}
	joints, err := modeler.ReadJoints(doc, jacr, [][4]uint16{})
	if err != nil {
		return nil, nil, err
	}
	weights, err := modeler.ReadWeights(doc, wacr, [][4]float32{})
	if err != nil {
		return nil, nil, err
	}
	if len(joints) != len(weights) {
		return nil, nil, fmt.Errorf("joints/weights count mismatch %d != %d", len(joints), len(weights))
	}
	return joints, weights, nil
}

// WriteSkinWeights appends new JOINTS_0 and WEIGHTS_0 accessors and returns their indices.
func WriteSkinWeights(doc *gltf.Document, joints [][4]uint16, weights [][4]float32) (uint32, uint32) {
	return modeler.WriteJoints(doc, joints), modeler.WriteWeights(doc, weights)
}
