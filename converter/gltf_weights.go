package converter

import (
	"log"
	"sort"
	"strings"

	"github.com/binzume/weightmirror/geom"
	"github.com/binzume/weightmirror/gltfutil"
	"github.com/binzume/weightmirror/skin"
	"github.com/qmuntal/gltf"
)

type GLTFWeightMirrorOption struct {
	skin.MirrorOption

	// Objects limits mirroring to the named nodes (or meshes). Empty means all.
	Objects []string
}

type gltfWeightMirror struct {
	*GLTFWeightMirrorOption
}

func NewGLTFWeightMirror(options *GLTFWeightMirrorOption) *gltfWeightMirror {
	if options == nil {
		options = &GLTFWeightMirrorOption{MirrorOption: *skin.DefaultMirrorOption()}
	}
	return &gltfWeightMirror{GLTFWeightMirrorOption: options}
}

// vertexBlock is a run of mesh vertices read from one set of accessors.
type vertexBlock struct {
	offset     int
	jointData  [][4]uint16
	weightData [][4]float32
	primitives []*gltf.Primitive
}

type skinnedMesh struct {
	mesh   *skin.Mesh
	names  []string
	blocks []*vertexBlock
	// root receives vertices left without any influence.
	root uint16
}

// Mirror mirrors the weights of every skinned mesh in doc.
// Updated primitives are pointed at newly written JOINTS_0 and WEIGHTS_0 accessors.
func (c *gltfWeightMirror) Mirror(doc *gltf.Document) ([]*skin.Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mirror := skin.NewWeightMirror(&c.MirrorOption)
	var reports []*skin.Report
	// mesh => skin
	done := map[uint32]uint32{}
	for _, node := range doc.Nodes {
		if node.Mesh == nil || node.Skin == nil || int(*node.Mesh) >= len(doc.Meshes) || int(*node.Skin) >= len(doc.Skins) {
			continue
		}
		if sk, ok := done[*node.Mesh]; ok {
			if sk != *node.Skin {
				log.Println("WARNING: mesh shared by skins. skipped:", node.Name, "skin:", *node.Skin)
			}
			continue
		}
		done[*node.Mesh] = *node.Skin

		m := doc.Meshes[*node.Mesh]
		name := node.Name
		if name == "" {
			name = m.Name
		}
		if !selected(c.Objects, node.Name) && !selected(c.Objects, m.Name) {
			continue
		}
		sm, err := readSkinnedMesh(doc, name, m, doc.Skins[*node.Skin], c.TargetSuffix)
		if err != nil {
			return reports, err
		}
		if sm == nil {
			continue
		}

		before := map[string][]int{}
		for _, n := range sm.mesh.GroupNames() {
			before[n] = sm.mesh.Group(n).Indices()
		}
		report, err := mirror.Mirror(sm.mesh, sm.names)
		if err != nil {
			return reports, err
		}
		sm.write(doc, report, before)
		reports = append(reports, report)
	}
	return reports, nil
}

// readSkinnedMesh builds a mesh with a group for every joint weighted in m.
// Joints named with targetSuffix always get a group.
func readSkinnedMesh(doc *gltf.Document, name string, m *gltf.Mesh, sk *gltf.Skin, targetSuffix string) (*skinnedMesh, error) {
	sm := &skinnedMesh{
		mesh:  skin.NewMesh(name),
		names: gltfutil.JointNames(doc, sk),
	}
	for i, j := range sk.Joints {
		if sk.Skeleton != nil && j == *sk.Skeleton {
			sm.root = uint16(i)
		}
	}
	for _, n := range sm.names {
		if strings.HasSuffix(n, targetSuffix) {
			sm.mesh.AddGroup(n)
		}
	}

	blocks := map[[3]uint32]*vertexBlock{}
	for _, prim := range m.Primitives {
		if !gltfutil.IsSkinned(prim) {
			continue
		}
		key := [3]uint32{prim.Attributes[gltfutil.AttrPosition], prim.Attributes[gltfutil.AttrJoints], prim.Attributes[gltfutil.AttrWeights]}
		if b, ok := blocks[key]; ok {
			b.primitives = append(b.primitives, prim)
			continue
		}
		pos, err := gltfutil.ReadPositions(doc, key[0])
		if err != nil {
			return nil, err
		}
		joints, weights, err := gltfutil.ReadSkinWeights(doc, prim)
		if err != nil {
			return nil, err
		}
		if len(joints) != len(pos) {
			log.Println("WARNING: vertex count mismatch. mesh:", name)
			continue
		}
		b := &vertexBlock{
			offset:     len(sm.mesh.Vertices),
			jointData:  joints,
			weightData: weights,
			primitives: []*gltf.Primitive{prim},
		}
		blocks[key] = b
		sm.blocks = append(sm.blocks, b)

		for i, p := range pos {
			v := sm.mesh.AddVertex(*geom.NewVector3FromArray(p))
			for slot, j := range joints[i] {
				w := weights[i][slot]
				if w <= 0 || int(j) >= len(sm.names) {
					continue
				}
				g := sm.mesh.AddGroup(sm.names[j])
				cur, _ := g.Weight(v.Index)
				g.Set(v.Index, cur+w)
			}
		}
	}
	if len(sm.blocks) == 0 {
		return nil, nil
	}
	return sm, nil
}

type influence struct {
	joint  uint16
	weight float32
}

// write stores committed target groups back into the vertex blocks.
// Only vertices whose target weights may have changed are rewritten and renormalized.
func (sm *skinnedMesh) write(doc *gltf.Document, report *skin.Report, before map[string][]int) {
	committed := report.Committed()
	if len(committed) == 0 {
		return
	}
	jointIndex := map[string]uint16{}
	for i := len(sm.names) - 1; i >= 0; i-- {
		jointIndex[sm.names[i]] = uint16(i)
	}
	targets := map[string]bool{}
	touched := map[int]bool{}
	for _, res := range committed {
		t := res.Pair.Target
		targets[t] = true
		for _, v := range before[t] {
			touched[v] = true
		}
		for v := range sm.mesh.Group(t).Weights {
			touched[v] = true
		}
	}

	for _, b := range sm.blocks {
		var joints [][4]uint16
		var weights [][4]float32
		for i := range b.jointData {
			v := b.offset + i
			if !touched[v] {
				continue
			}
			if joints == nil {
				joints = append([][4]uint16(nil), b.jointData...)
				weights = append([][4]float32(nil), b.weightData...)
			}
			var inf []influence
			for slot, j := range b.jointData[i] {
				w := b.weightData[i][slot]
				if w <= 0 || (int(j) < len(sm.names) && targets[sm.names[j]]) {
					continue
				}
				inf = append(inf, influence{j, w})
			}
			for t := range targets {
				if w, ok := sm.mesh.Group(t).Weight(v); ok && w > 0 {
					inf = append(inf, influence{jointIndex[t], w})
				}
			}
			if len(inf) > 4 {
				log.Println("WARNING: influences > 4. V:", v, " mesh:", sm.mesh.Name)
			}
			if len(inf) == 0 {
				log.Println("WARNING: no influence left. bound to root joint. V:", v, " mesh:", sm.mesh.Name)
			}
			joints[i], weights[i] = topInfluences(inf, sm.root)
		}
		if joints == nil {
			continue
		}
		ja, wa := gltfutil.WriteSkinWeights(doc, joints, weights)
		for _, prim := range b.primitives {
			prim.Attributes[gltfutil.AttrJoints] = ja
			prim.Attributes[gltfutil.AttrWeights] = wa
		}
	}
}

// topInfluences keeps the 4 largest influences and normalizes them.
// A vertex without influence is bound to root.
func topInfluences(inf []influence, root uint16) ([4]uint16, [4]float32) {
	if len(inf) == 0 {
		return [4]uint16{root}, [4]float32{1}
	}
	sort.SliceStable(inf, func(i, j int) bool {
		if inf[i].weight != inf[j].weight {
			return inf[i].weight > inf[j].weight
		}
		return inf[i].joint < inf[j].joint
	})
	if len(inf) > 4 {
		inf = inf[:4]
	}
	var joints [4]uint16
	var weights [4]float32
	var sum float32
	for i, f := range inf {
		joints[i] = f.joint
		weights[i] = f.weight
		sum += f.weight
	}
	if sum > 0 {
		for i := range weights {
			weights[i] /= sum
		}
	}
	return joints, weights
}
