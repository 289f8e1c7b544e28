package mqo

import (
	"encoding/xml"
	"io"
	"os"
)

type MQXDoc struct {
	XMLName    xml.Name `xml:"MetasequoiaDocument"`
	IncludedBy string

	Plugins []Plugin
}

func WriteMQX(mqo *Document, w io.Writer, mqoName string) error {
	mqx := &MQXDoc{IncludedBy: mqoName, Plugins: mqo.GetPlugins()}
	for _, p := range mqx.Plugins {
		p.PreSerialize(mqo)
	}

	xmlBuf, err := xml.MarshalIndent(mqx, "", "    ")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(xmlBuf)
	return err
}

func SaveMQX(mqo *Document, path, mqoName string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMQX(mqo, w, mqoName); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
