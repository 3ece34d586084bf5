// Package manifest loads declarative RedisAI deployments and compiles them
// into command sequences.
//
// A manifest lists backends to load, tensors to store, models and scripts to
// upload and runs to execute. Files referenced by a manifest are resolved
// relative to the manifest's own directory. Both TOML and YAML are accepted:
//
//	[[backends]]
//	identifier = "TORCH"
//	path = "/usr/lib/redis/modules/backends/redisai_torch/redisai_torch.so"
//
//	[[models]]
//	key = "resnet"
//	backend = "TORCH"
//	device = "CPU"
//	file = "resnet50.pt"
//	batch = 8
package manifest

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is a parsed deployment file.
type Manifest struct {
	Backends []Backend `toml:"backends" yaml:"backends"`
	Tensors  []Tensor  `toml:"tensors" yaml:"tensors"`
	Models   []Model   `toml:"models" yaml:"models"`
	Scripts  []Script  `toml:"scripts" yaml:"scripts"`
	Runs     []Run     `toml:"runs" yaml:"runs"`

	// dir resolves relative file references.
	dir string
}

// Backend is a backend library to load with AI.CONFIG LOADBACKEND.
type Backend struct {
	Identifier string `toml:"identifier" yaml:"identifier"`
	Path       string `toml:"path" yaml:"path"`
}

// Tensor is stored either from literal values or from a raw row-major blob
// file. Shape defaults to [len(values)] for literal values and is required
// for blob files.
type Tensor struct {
	Key      string        `toml:"key" yaml:"key"`
	Dtype    string        `toml:"dtype" yaml:"dtype"`
	Shape    []int64       `toml:"shape" yaml:"shape"`
	Values   []interface{} `toml:"values" yaml:"values"`
	BlobFile string        `toml:"blob_file" yaml:"blob_file"`
}

// Model is a serialized model file uploaded with AI.MODELSET.
type Model struct {
	Key      string   `toml:"key" yaml:"key"`
	Backend  string   `toml:"backend" yaml:"backend"`
	Device   string   `toml:"device" yaml:"device"`
	File     string   `toml:"file" yaml:"file"`
	Batch    *int64   `toml:"batch" yaml:"batch"`
	MinBatch *int64   `toml:"min_batch" yaml:"min_batch"`
	Tag      *string  `toml:"tag" yaml:"tag"`
	Inputs   []string `toml:"inputs" yaml:"inputs"`
	Outputs  []string `toml:"outputs" yaml:"outputs"`
}

// Script is TorchScript source, given inline or as a file.
type Script struct {
	Key    string `toml:"key" yaml:"key"`
	Device string `toml:"device" yaml:"device"`
	File   string `toml:"file" yaml:"file"`
	Source string `toml:"source" yaml:"source"`
	Tag    string `toml:"tag" yaml:"tag"`
}

// Run executes a model, or a function of a script.
type Run struct {
	Model    string   `toml:"model" yaml:"model"`
	Script   string   `toml:"script" yaml:"script"`
	Function string   `toml:"function" yaml:"function"`
	Inputs   []string `toml:"inputs" yaml:"inputs"`
	Outputs  []string `toml:"outputs" yaml:"outputs"`
}

// Load reads and validates the manifest at path. The format is chosen by
// extension: .toml, .yaml or .yml.
func Load(path string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &m)
		if err != nil {
			return nil, errors.Wrapf(err, "manifest parse failed (%s)", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("manifest parse failed (%s): unknown keys %v", path, undecoded)
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "manifest load failed (%s)", path)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "manifest parse failed (%s)", path)
		}
	default:
		return nil, errors.Errorf("manifest %s: unsupported extension %q, want .toml, .yaml or .yml", path, filepath.Ext(path))
	}

	m.dir = filepath.Dir(path)
	if err := m.Validate(); err != nil {
		return nil, errors.Wrapf(err, "manifest invalid (%s)", path)
	}
	return &m, nil
}

// Validate checks that every entry carries the fields it needs. It does not
// check backend-specific rules; those surface when the manifest is compiled.
func (m *Manifest) Validate() error {
	for i, b := range m.Backends {
		if b.Identifier == "" || b.Path == "" {
			return errors.Errorf("backends[%d]: identifier and path are required", i)
		}
	}
	for i, t := range m.Tensors {
		switch {
		case t.Key == "":
			return errors.Errorf("tensors[%d]: key is required", i)
		case t.Dtype == "":
			return errors.Errorf("tensor %s: dtype is required", t.Key)
		case (t.BlobFile == "") == (t.Values == nil):
			return errors.Errorf("tensor %s: exactly one of values and blob_file is required", t.Key)
		case t.BlobFile != "" && len(t.Shape) == 0:
			return errors.Errorf("tensor %s: shape is required with blob_file", t.Key)
		}
	}
	for i, mod := range m.Models {
		if mod.Key == "" || mod.Backend == "" || mod.Device == "" || mod.File == "" {
			return errors.Errorf("models[%d]: key, backend, device and file are required", i)
		}
	}
	for i, s := range m.Scripts {
		switch {
		case s.Key == "" || s.Device == "":
			return errors.Errorf("scripts[%d]: key and device are required", i)
		case (s.File == "") == (s.Source == ""):
			return errors.Errorf("script %s: exactly one of file and source is required", s.Key)
		}
	}
	for i, r := range m.Runs {
		switch {
		case (r.Model == "") == (r.Script == ""):
			return errors.Errorf("runs[%d]: exactly one of model and script is required", i)
		case r.Script != "" && r.Function == "":
			return errors.Errorf("runs[%d]: script %s needs a function", i, r.Script)
		case r.Model != "" && r.Function != "":
			return errors.Errorf("runs[%d]: function is only valid for scripts", i)
		}
	}
	return nil
}

// resolve returns path relative to the manifest directory unless absolute.
func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}
