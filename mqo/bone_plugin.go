package mqo

import (
	"encoding/xml"
	"fmt"
	"sort"
)

type BonePlugin struct {
	XMLName xml.Name `xml:"Plugin.56A31D20.71F282AB"`

	Name     string   `xml:"name,attr"`
	BoneSet2 BoneSet2 `xml:"BoneSet2"`
	PoseSet  *PoseSet `xml:"Poses,omitempty"`
	Obj      []BoneObj
}

func GetBonePlugin(mqo *Document) *BonePlugin {
	for _, p := range mqo.Plugins {
		if bp, ok := p.(*BonePlugin); ok {
			return bp
		}
	}
	bp := &BonePlugin{}
	mqo.Plugins = append(mqo.Plugins, bp)
	return bp
}

func (p *BonePlugin) Bones() []*Bone {
	return p.BoneSet2.Bones
}

func (p *BonePlugin) AddBone(b *Bone) {
	p.BoneSet2.Bones = append(p.BoneSet2.Bones, b)
}

// BoneNames returns bone names in bone order.
func (p *BonePlugin) BoneNames() []string {
	names := make([]string, len(p.BoneSet2.Bones))
	for i, b := range p.BoneSet2.Bones {
		names[i] = b.Name
	}
	return names
}

type BoneObj struct {
	ID int `xml:"id,attr"`
}

type BoneSet2 struct {
	Limit int     `xml:"limit,attr"`
	Bones []*Bone `xml:"Bone"`
}

type Vector3Attr struct {
	Vector3
}

func (v *Vector3Attr) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	value := fmt.Sprintf("%v,%v,%v", v.X, v.Y, v.Z)
	return xml.Attr{Name: name, Value: value}, nil
}

func (v *Vector3Attr) UnmarshalXMLAttr(attr xml.Attr) error {
	_, err := fmt.Sscanf(attr.Value, "%f,%f,%f", &v.X, &v.Y, &v.Z)
	return err
}

type Bone struct {
	ID       int          `xml:"id,attr"`
	Name     string       `xml:"name,attr"`
	Group    int          `xml:"group,attr,omitempty"`
	Parent   int          `xml:"parent,attr,omitempty"`
	Pos      Vector3Attr  `xml:"pos,attr"`
	Movable  int          `xml:"movable,attr,omitempty"`
	Hide     int          `xml:"hide,attr,omitempty"`
	Dummy    int          `xml:"dummy,attr,omitempty"`
	Color    string       `xml:"color,attr,omitempty"`
	UpVector *Vector3Attr `xml:"upVector,attr,omitempty"`
	Rotate   *Vector3Attr `xml:"rotate,attr,omitempty"`

	IK *BoneIK `xml:"IK,omitempty"`

	Weights []*BoneWeight2 `xml:"W"`
}

// ObjectWeights returns the weights of the bone for an object, or nil.
func (b *Bone) ObjectWeights(objectID int) *BoneWeight2 {
	for _, w := range b.Weights {
		if w.ObjectID == objectID {
			return w
		}
	}
	return nil
}

// SetObjectWeights replaces the weights of the bone for an object.
// weights maps vertex ID to weight in percent. An empty map removes the object entry.
func (b *Bone) SetObjectWeights(objectID int, weights map[int]float32) {
	var vertexes []*VertexWeight
	ids := make([]int, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		vertexes = append(vertexes, &VertexWeight{VertexID: id, Weight: weights[id]})
	}

	for i, w := range b.Weights {
		if w.ObjectID != objectID {
			continue
		}
		if len(vertexes) == 0 {
			b.Weights = append(b.Weights[:i], b.Weights[i+1:]...)
		} else {
			w.Vertexes = vertexes
		}
		return
	}
	if len(vertexes) > 0 {
		b.Weights = append(b.Weights, &BoneWeight2{ObjectID: objectID, Vertexes: vertexes})
	}
}

type BoneWeight2 struct {
	ObjectID int             `xml:"obj,attr"`
	Vertexes []*VertexWeight `xml:"V"`
}

// VertexWeight.Weight is in percent (0-100).
type VertexWeight struct {
	VertexID int     `xml:"v,attr"`
	Weight   float32 `xml:"w,attr"`
}

type BoneIK struct {
	ChainCount int `xml:"chain,attr"`

	// MMD
	Name    string `xml:"name,attr,omitempty"`
	TipName string `xml:"tipName,attr,omitempty"`
}

type PoseSet struct {
	BonePoses []*BonePose `xml:"Pose"`
}

type BonePose struct {
	// oneof
	ID   int    `xml:"id,attr,omitempty"`
	Name string `xml:"name,attr,omitempty"`

	// Translation
	MvX float32 `xml:"mvX,attr"`
	MvY float32 `xml:"mvY,attr"`
	MvZ float32 `xml:"mvZ,attr"`

	// Rotation
	RotB float32 `xml:"rotB,attr"`
	RotH float32 `xml:"rotH,attr"`
	RotP float32 `xml:"rotP,attr"`

	// Scale
	ScB float32 `xml:"scB,attr"`
	ScH float32 `xml:"scH,attr"`
	ScP float32 `xml:"scP,attr"`
}

func (p *BonePlugin) PreSerialize(mqo *Document) {
	if p.Name == "" {
		p.Name = "Bone"
	}
	if len(p.Obj) > 0 {
		return
	}
	for i, o := range mqo.Objects {
		if o.Depth == 0 {
			p.Obj = append(p.Obj, BoneObj{ID: mqo.ObjectID(i)})
		}
	}
}

func (p *BonePlugin) PostDeserialize(mqo *Document) {
}
