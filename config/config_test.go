package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/binzume/weightmirror/geom"
	"github.com/binzume/weightmirror/skin"
)

func TestDefault(t *testing.T) {
	opt, err := Default().MirrorOption()
	if err != nil {
		t.Fatal(err)
	}
	if opt.SourceSuffix != "_R" || opt.TargetSuffix != "_L" || opt.Axis != geom.AxisX || opt.Epsilon != 0.0001 {
		t.Error("unexpected option", opt)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model"+FileSuffix)
	data := "sourceSuffix: .L\ntargetSuffix: .R\naxis: z\nobjects:\n  - body\n  - hair\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.SourceSuffix != ".L" || conf.TargetSuffix != ".R" || len(conf.Objects) != 2 {
		t.Error("invalid config", conf)
	}
	if conf.Epsilon != skin.DefaultEpsilon {
		t.Error("default should be kept", conf.Epsilon)
	}
	opt, err := conf.MirrorOption()
	if err != nil {
		t.Fatal(err)
	}
	if opt.Axis != geom.AxisZ {
		t.Error("invalid axis", opt.Axis)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "notfound.yaml")); err == nil {
		t.Error("error expected")
	}
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "model.mqo")
	if FindFile(input) != "" {
		t.Error("config file should not be found")
	}
	path := filepath.Join(dir, "model"+FileSuffix)
	if err := os.WriteFile(path, []byte("axis: z\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if FindFile(input) != path {
		t.Error("config file not found", FindFile(input))
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WEIGHTMIRROR_EPSILON", "0.5")
	t.Setenv("WEIGHTMIRROR_OBJECTS", "body,face")
	t.Setenv("WEIGHTMIRROR_WORKERS", "4")

	conf := Default()
	if err := conf.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if conf.Epsilon != 0.5 || conf.Workers != 4 {
		t.Error("env not applied", conf)
	}
	if len(conf.Objects) != 2 || conf.Objects[1] != "face" {
		t.Error("invalid objects", conf.Objects)
	}
	if conf.SourceSuffix != skin.DefaultSourceSuffix {
		t.Error("unset variable should not change the value", conf.SourceSuffix)
	}

	t.Setenv("WEIGHTMIRROR_WORKERS", "many")
	if err := Default().ApplyEnv(); err == nil {
		t.Error("error expected")
	}
}

func TestMirrorOptionInvalid(t *testing.T) {
	conf := Default()
	conf.Axis = "w"
	if _, err := conf.MirrorOption(); !errors.Is(err, skin.ErrInvalidAxis) {
		t.Error("unexpected error", err)
	}
	conf = Default()
	conf.Epsilon = -1
	if _, err := conf.MirrorOption(); !errors.Is(err, skin.ErrInvalidEpsilon) {
		t.Error("unexpected error", err)
	}
	conf = Default()
	conf.TargetSuffix = ""
	if _, err := conf.MirrorOption(); !errors.Is(err, skin.ErrEmptySuffix) {
		t.Error("unexpected error", err)
	}
}
