package mqo

import (
	"io"
	"os"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

const testMQO = `Metasequoia Document
Format Text Ver 1.1

CodePage utf8

Scene {
	pos 0.0000 0.0000 1500.0000
	dirlights 1 {
		light {
			dir 0.408 0.408 0.816
		}
	}
}
Object "body" {
	uid 2
	depth 0
	visible 15
	locking 0
	vertex 3 {
		1.0000 2.0000 3.0000
		-1.0000 2.0000 3.0000
		0.0000 -0.5000 1e-3
	}
	vertexattr {
		uid {
			10
			11
			12
		}
	}
	face 1 {
		3 V(0 1 2)
	}
}
Object "child" {
	uid 3
	depth 1
	vertex 1 {
		0.0000 0.0000 0.0000
	}
}
IncludeXml "test.mqx"
Eof
`

const testMQX = `<?xml version="1.0" encoding="UTF-8"?>
<MetasequoiaDocument>
    <IncludedBy>test.mqo</IncludedBy>
    <Plugin.56A31D20.71F282AB name="Bone">
        <BoneSet2 limit="4">
            <Bone id="1" name="arm_R" pos="1,2,3">
                <W obj="2">
                    <V v="10" w="100" />
                    <V v="12" w="25.5" />
                </W>
            </Bone>
            <Bone id="2" name="arm_L" parent="1" pos="-1,2,3" />
        </BoneSet2>
    </Plugin.56A31D20.71F282AB>
    <Plugin.00000000.DEADBEEF name="Other">
        <Item value="1" />
    </Plugin.00000000.DEADBEEF>
</MetasequoiaDocument>
`

func parseTestMQO(t *testing.T) *Document {
	p := NewParser(strings.NewReader(testMQO), "")
	p.Open = func(name string) (io.ReadCloser, error) {
		if name != "test.mqx" {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(testMQX)), nil
	}
	doc, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParse(t *testing.T) {
	doc := parseTestMQO(t)

	if len(doc.Objects) != 2 {
		t.Fatal("invalid object count", len(doc.Objects))
	}
	obj := doc.Objects[0]
	if obj.Name != "body" || obj.UID != 2 || !obj.Visible {
		t.Error("invalid object", obj)
	}
	if len(obj.Vertexes) != 3 {
		t.Fatal("invalid vertex count", len(obj.Vertexes))
	}
	if *obj.Vertexes[1] != (Vector3{X: -1, Y: 2, Z: 3}) {
		t.Error("invalid vertex", obj.Vertexes[1])
	}
	if *obj.Vertexes[2] != (Vector3{X: 0, Y: -0.5, Z: 0.001}) {
		t.Error("invalid vertex", obj.Vertexes[2])
	}
	if obj.GetVertexIndexByID(11) != 1 || obj.GetVertexIndexByID(1) != -1 {
		t.Error("invalid vertex uid", obj.VertexByUID)
	}
	if ids := obj.GetVertexIDs(); ids[0] != 10 || ids[2] != 12 {
		t.Error("invalid vertex ids", ids)
	}

	child := doc.Objects[1]
	if child.Depth != 1 || doc.ObjectID(1) != 3 {
		t.Error("invalid child object", child.Depth, doc.ObjectID(1))
	}
	if child.GetVertexIndexByID(1) != 0 || child.GetVertexIndexByID(2) != -1 {
		t.Error("invalid vertex index")
	}
	if doc.GetObjectByID(3) != child || doc.GetObjectByID(1) != nil {
		t.Error("invalid GetObjectByID")
	}

	if doc.IncludeXml != "test.mqx" {
		t.Error("invalid IncludeXml", doc.IncludeXml)
	}
	if len(doc.Plugins) != 2 {
		t.Fatal("invalid plugin count", len(doc.Plugins))
	}

	bones := GetBonePlugin(doc).Bones()
	if len(bones) != 2 || bones[0].Name != "arm_R" || bones[1].Parent != 1 {
		t.Fatal("invalid bones", bones)
	}
	if names := GetBonePlugin(doc).BoneNames(); len(names) != 2 || names[1] != "arm_L" {
		t.Error("invalid bone names", names)
	}
	if bones[1].Pos.X != -1 {
		t.Error("invalid bone pos", bones[1].Pos)
	}
	w := bones[0].ObjectWeights(doc.ObjectID(0))
	if w == nil || len(w.Vertexes) != 2 || w.Vertexes[1].Weight != 25.5 {
		t.Error("invalid weights", w)
	}
	if bones[1].ObjectWeights(2) != nil {
		t.Error("unexpected weights")
	}
	if raw, ok := doc.Plugins[1].(*RawPlugin); !ok || raw.XMLName.Local != "Plugin.00000000.DEADBEEF" {
		t.Error("unknown plugin not kept", doc.Plugins[1])
	}
}

func TestParseMissingMQX(t *testing.T) {
	p := NewParser(strings.NewReader(testMQO), "")
	p.Open = func(name string) (io.ReadCloser, error) {
		return nil, os.ErrNotExist
	}
	doc, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Objects) != 2 || len(doc.Plugins) != 0 {
		t.Error("invalid document", len(doc.Objects), len(doc.Plugins))
	}
}

func TestParseShiftJIS(t *testing.T) {
	src, err := japanese.ShiftJIS.NewEncoder().String("Metasequoia Document\nObject \"体\" {\n\tvertex 1 {\n\t\t1 2 3\n\t}\n}\nEof\n")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(strings.NewReader(src), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Objects) != 1 || doc.Objects[0].Name != "体" {
		t.Error("invalid object", doc.Objects)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/test.mqo", []byte(testMQO), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir+"/test.mqx", []byte(testMQX), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(dir + "/test.mqo")
	if err != nil {
		t.Fatal(err)
	}
	if len(GetBonePlugin(doc).Bones()) != 2 {
		t.Error("bones not loaded")
	}
}
