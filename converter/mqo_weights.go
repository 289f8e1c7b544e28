package converter

import (
	"log"
	"strings"

	"github.com/binzume/weightmirror/mqo"
	"github.com/binzume/weightmirror/skin"
)

type MQOWeightMirrorOption struct {
	skin.MirrorOption

	// Objects limits mirroring to the named objects. Empty means all objects.
	Objects []string
}

type mqoWeightMirror struct {
	*MQOWeightMirrorOption
}

func NewMQOWeightMirror(options *MQOWeightMirrorOption) *mqoWeightMirror {
	if options == nil {
		options = &MQOWeightMirrorOption{MirrorOption: *skin.DefaultMirrorOption()}
	}
	return &mqoWeightMirror{MQOWeightMirrorOption: options}
}

// Mirror mirrors the bone weights of every object in doc. Bone weights are updated in place.
func (c *mqoWeightMirror) Mirror(doc *mqo.Document) ([]*skin.Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var bp *mqo.BonePlugin
	var morphs []*mqo.MorphTargetList
	for _, p := range doc.Plugins {
		switch p := p.(type) {
		case *mqo.BonePlugin:
			bp = p
		case *mqo.MorphPlugin:
			morphs = p.Morphs()
		}
	}
	if bp == nil || len(bp.Bones()) == 0 {
		log.Println("No bones.")
		return nil, nil
	}

	morphTargets := map[string]bool{}
	for _, m := range morphs {
		for _, t := range m.Target {
			morphTargets[t.Name] = true
		}
	}
	bones := bp.Bones()
	names := bp.BoneNames()
	boneByName := map[string]*mqo.Bone{}
	for _, b := range bones {
		if _, exists := boneByName[b.Name]; !exists {
			boneByName[b.Name] = b
		}
	}

	mirror := skin.NewWeightMirror(&c.MirrorOption)
	var reports []*skin.Report
	for i, obj := range doc.Objects {
		if morphTargets[obj.Name] || !selected(c.Objects, obj.Name) || len(obj.Vertexes) == 0 {
			continue
		}
		objID := doc.ObjectID(i)
		mesh := objectMesh(obj, objID, bones, c.TargetSuffix)
		report, err := mirror.Mirror(mesh, names)
		if err != nil {
			return reports, err
		}
		ids := obj.GetVertexIDs()
		for _, res := range report.Committed() {
			weights := map[int]float32{}
			for v, w := range mesh.Group(res.Pair.Target).Weights {
				weights[ids[v]] = w * 100
			}
			boneByName[res.Pair.Target].SetObjectWeights(objID, weights)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// objectMesh builds a mesh with a group for every bone weighted on the object.
// Bones named with targetSuffix always get a group. Weights are converted from percent.
func objectMesh(obj *mqo.Object, objID int, bones []*mqo.Bone, targetSuffix string) *skin.Mesh {
	mesh := skin.NewMesh(obj.Name)
	for _, v := range obj.Vertexes {
		mesh.AddVertex(*v)
	}
	for _, b := range bones {
		bw := b.ObjectWeights(objID)
		if bw == nil {
			if strings.HasSuffix(b.Name, targetSuffix) {
				mesh.AddGroup(b.Name)
			}
			continue
		}
		g := mesh.AddGroup(b.Name)
		for _, vw := range bw.Vertexes {
			v := obj.GetVertexIndexByID(vw.VertexID)
			if v < 0 {
				log.Println("WARNING: invalid weight. V:", vw.VertexID, " O:", obj.Name)
				continue
			}
			g.Set(v, vw.Weight*0.01)
		}
	}
	return mesh
}

func selected(names []string, name string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
