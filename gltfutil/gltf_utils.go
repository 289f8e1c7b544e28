package gltfutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

func Load(path string) (*gltf.Document, error) {
	return gltf.Open(path)
}

// Save writes doc as .gltf (JSON) or as binary glTF for any other extension (.glb, .vrm).
// Buffers without external files are embedded as data URIs in .gltf.
func Save(doc *gltf.Document, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".gltf" {
		for _, b := range doc.Buffers {
			if b.URI == "" || b.IsEmbeddedResource() {
				b.EmbeddedResource()
			}
		}
		return gltf.Save(doc, path)
	}
	return gltf.SaveBinary(doc, path)
}

// NodeName returns the name of a node, or a generated one for unnamed nodes.
func NodeName(doc *gltf.Document, node uint32) string {
	if int(node) < len(doc.Nodes) && doc.Nodes[node].Name != "" {
		return doc.Nodes[node].Name
	}
	return fmt.Sprintf("node%d", node)
}

// JointNames returns the node names of the skin joints in joint order.
func JointNames(doc *gltf.Document, skin *gltf.Skin) []string {
	names := make([]string, len(skin.Joints))
	for i, j := range skin.Joints {
		names[i] = NodeName(doc, j)
	}
	return names
}
