package mqo

import (
	"encoding/xml"
	"io"
	"os"
)

func ReadMQX(r io.Reader) (*MQXDoc, error) {
	var data struct {
		XMLName     xml.Name `xml:"MetasequoiaDocument"`
		IncludedBy  string
		BonePlugin  *BonePlugin
		MorphPlugin *MorphPlugin
		Others      []*RawPlugin `xml:",any"`
	}
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	doc := &MQXDoc{IncludedBy: data.IncludedBy}
	if data.BonePlugin != nil {
		doc.Plugins = append(doc.Plugins, data.BonePlugin)
	}
	if data.MorphPlugin != nil {
		doc.Plugins = append(doc.Plugins, data.MorphPlugin)
	}
	for _, p := range data.Others {
		doc.Plugins = append(doc.Plugins, p)
	}
	for _, p := range doc.Plugins {
		p.PostDeserialize(nil)
	}
	return doc, nil
}

// RawPlugin keeps the content of plugins not handled by this package, so they survive a rewrite.
type RawPlugin struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

func (p *RawPlugin) PreSerialize(mqo *Document) {
}

func (p *RawPlugin) PostDeserialize(mqo *Document) {
}

func LoadMQX(path string) (*MQXDoc, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadMQX(r)
}
