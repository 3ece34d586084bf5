package manifest

import (
	"os"

	"github.com/pkg/errors"

	"redisai-go/builder"
	"redisai-go/message"
)

// Compile turns the manifest into commands, in dependency order: backends,
// tensors, models, scripts, then runs. Referenced files are read here.
func (m *Manifest) Compile(b *builder.Builder) ([]message.Command, error) {
	var cmds []message.Command

	for _, be := range m.Backends {
		cmds = append(cmds, b.LoadBackend(be.Identifier, be.Path))
	}

	for _, t := range m.Tensors {
		cmd, err := m.compileTensor(b, t)
		if err != nil {
			return nil, errors.Wrapf(err, "tensor %s", t.Key)
		}
		cmds = append(cmds, cmd)
	}

	for _, mod := range m.Models {
		data, err := os.ReadFile(m.resolve(mod.File))
		if err != nil {
			return nil, errors.Wrapf(err, "model %s", mod.Key)
		}
		cmd, err := b.ModelSet(mod.Key, mod.Backend, mod.Device, data, builder.ModelOptions{
			Batch:    mod.Batch,
			MinBatch: mod.MinBatch,
			Tag:      mod.Tag,
			Inputs:   names(mod.Inputs),
			Outputs:  names(mod.Outputs),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "model %s", mod.Key)
		}
		cmds = append(cmds, cmd)
	}

	for _, s := range m.Scripts {
		source := s.Source
		if s.File != "" {
			data, err := os.ReadFile(m.resolve(s.File))
			if err != nil {
				return nil, errors.Wrapf(err, "script %s", s.Key)
			}
			source = string(data)
		}
		cmds = append(cmds, b.ScriptSet(s.Key, s.Device, source, s.Tag))
	}

	for _, r := range m.Runs {
		if r.Script != "" {
			cmds = append(cmds, b.ScriptRun(r.Script, r.Function, names(r.Inputs), names(r.Outputs)))
			continue
		}
		cmds = append(cmds, b.ModelRun(r.Model, names(r.Inputs), names(r.Outputs)))
	}

	return cmds, nil
}

func (m *Manifest) compileTensor(b *builder.Builder, t Tensor) (message.Command, error) {
	if t.BlobFile != "" {
		blob, err := os.ReadFile(m.resolve(t.BlobFile))
		if err != nil {
			return nil, err
		}
		arr, err := builder.ArrayFromBlob(t.Dtype, t.Shape, blob)
		if err != nil {
			return nil, err
		}
		return b.TensorSet(t.Key, arr, nil, "")
	}
	seq, err := builder.ValuesOf(t.Values)
	if err != nil {
		return nil, err
	}
	return b.TensorSet(t.Key, seq, t.Shape, t.Dtype)
}

// names maps a config list onto a NameList; an empty list stays nil so that
// the builder's TF check sees it as missing.
func names(list []string) builder.NameList {
	if len(list) == 0 {
		return nil
	}
	return builder.Names(list)
}
