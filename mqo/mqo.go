package mqo

import "github.com/binzume/weightmirror/geom"

type Vector3 = geom.Vector3

type Object struct {
	UID      int
	Name     string
	Vertexes []*Vector3
	Visible  bool
	Locked   bool
	Depth    int

	// vertex UID => index
	VertexByUID map[int]int
}

func NewObject(name string) *Object {
	return &Object{Name: name, Visible: true, VertexByUID: map[int]int{}}
}

// GetVertexIndexByID resolves a vertex ID used by plugins. Returns -1 for unknown IDs.
func (o *Object) GetVertexIndexByID(id int) int {
	if len(o.VertexByUID) > 0 {
		if v, ok := o.VertexByUID[id]; ok {
			return v
		}
		return -1
	}
	if id <= 0 || id > len(o.Vertexes) {
		return -1
	}
	return id - 1
}

// GetVertexIDs returns the plugin vertex ID of every vertex.
func (o *Object) GetVertexIDs() []int {
	ids := make([]int, len(o.Vertexes))
	for i := range ids {
		ids[i] = i + 1
	}
	if len(o.VertexByUID) > 0 {
		for uid, v := range o.VertexByUID {
			if v >= 0 && v < len(ids) {
				ids[v] = uid
			}
		}
	}
	return ids
}

type Plugin interface {
	PreSerialize(mqo *Document)
	PostDeserialize(mqo *Document)
}

type Document struct {
	Objects []*Object
	Plugins []Plugin

	// IncludeXml is the name of the .mqx file referenced by the document.
	IncludeXml string
}

func NewDocument() *Document {
	return &Document{}
}

// ObjectID returns the ID used by plugins to refer to Objects[index].
func (doc *Document) ObjectID(index int) int {
	if obj := doc.Objects[index]; obj.UID > 0 {
		return obj.UID
	}
	return index + 1
}

func (doc *Document) GetObjectByID(id int) *Object {
	for i, obj := range doc.Objects {
		if doc.ObjectID(i) == id {
			return obj
		}
	}
	return nil
}

func (doc *Document) GetPlugins() []Plugin {
	return doc.Plugins
}
