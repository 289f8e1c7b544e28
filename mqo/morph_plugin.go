package mqo

import "encoding/xml"

type MorphPlugin struct {
	XMLName xml.Name `xml:"Plugin.56A31D20.C452C6DB"`

	Name     string `xml:"name,attr"`
	MorphSet MorphSet
}

func GetMorphPlugin(mqo *Document) *MorphPlugin {
	for _, p := range mqo.Plugins {
		if mp, ok := p.(*MorphPlugin); ok {
			return mp
		}
	}
	mp := &MorphPlugin{Name: "Morph"}
	mqo.Plugins = append(mqo.Plugins, mp)
	return mp
}

func (p *MorphPlugin) Morphs() []*MorphTargetList {
	return p.MorphSet.Targets
}

type MorphSet struct {
	Targets []*MorphTargetList `xml:"TargetList"`
}

type MorphTargetList struct {
	Base   string `xml:"base,attr"`
	Target []*MorphTarget
}

type MorphTarget struct {
	Name  string `xml:"name,attr"`
	Param int    `xml:"param,attr"`
}

func (p *MorphPlugin) PreSerialize(mqo *Document) {
}

func (p *MorphPlugin) PostDeserialize(mqo *Document) {
}
