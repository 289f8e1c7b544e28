package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/binzume/weightmirror/config"
	"github.com/binzume/weightmirror/converter"
	"github.com/binzume/weightmirror/gltfutil"
	"github.com/binzume/weightmirror/mqo"
	"github.com/binzume/weightmirror/skin"
)

func mirrorFile(input, output string, conf *config.Config, dryRun bool) error {
	opt, err := conf.MirrorOption()
	if err != nil {
		return err
	}
	log.Printf("Mirror %v -> %v axis:%v eps:%v", opt.SourceSuffix, opt.TargetSuffix, opt.Axis, opt.Epsilon)

	ext := strings.ToLower(filepath.Ext(input))
	switch ext {
	case ".mqo", ".mqoz":
		return mirrorMQO(input, output, opt, conf.Objects, dryRun)
	case ".glb", ".gltf", ".vrm":
		return mirrorGLTF(input, output, opt, conf.Objects, dryRun)
	}
	return fmt.Errorf("Unsupported input type: %v", ext)
}

func mirrorMQO(input, output string, opt *skin.MirrorOption, objects []string, dryRun bool) error {
	doc, err := mqo.Load(input)
	if err != nil {
		return err
	}
	reports, err := converter.NewMQOWeightMirror(&converter.MQOWeightMirrorOption{MirrorOption: *opt, Objects: objects}).Mirror(doc)
	if err != nil {
		return err
	}
	printReports(reports)
	if dryRun {
		return nil
	}

	if strings.ToLower(filepath.Ext(output)) == ".mqoz" {
		if strings.ToLower(filepath.Ext(input)) != ".mqoz" {
			return fmt.Errorf("Unsupported output type: %v", output)
		}
		return mqo.SaveMQOZ(doc, input, output)
	}
	if strings.ToLower(filepath.Ext(input)) != ".mqo" {
		return fmt.Errorf("Unsupported output type: %v", output)
	}
	mqxPath := output[0:len(output)-len(filepath.Ext(output))] + ".mqx"
	if err := mqo.SaveMQX(doc, mqxPath, filepath.Base(output)); err != nil {
		return err
	}
	return mqo.CopyMQO(input, output, filepath.Base(mqxPath))
}

func mirrorGLTF(input, output string, opt *skin.MirrorOption, objects []string, dryRun bool) error {
	doc, err := gltfutil.Load(input)
	if err != nil {
		return err
	}
	reports, err := converter.NewGLTFWeightMirror(&converter.GLTFWeightMirrorOption{MirrorOption: *opt, Objects: objects}).Mirror(doc)
	if err != nil {
		return err
	}
	printReports(reports)
	if dryRun {
		return nil
	}
	return gltfutil.Save(doc, output)
}

func printReports(reports []*skin.Report) {
	for _, r := range reports {
		log.Printf("%v: %d pairs, %d failed", r.Mesh, len(r.Committed()), r.Failed())
		for _, res := range r.Results {
			log.Printf("  %v [%v] mirrored:%d skipped:%d", res.Pair, res.Status, res.VerticesMirrored, res.VerticesSkipped)
		}
	}
}
