package builder

import (
	"strings"

	"go.uber.org/zap"

	"redisai-go/message"
)

// ModelOptions carries the optional arguments of ModelSet. Nil pointers are
// omitted from the command; a non-nil pointer is sent even if it holds the
// zero value.
type ModelOptions struct {
	Batch    *int64
	MinBatch *int64
	Tag      *string

	// Inputs and Outputs are required for the TF backend and ignored by
	// every other backend.
	Inputs  NameList
	Outputs NameList
}

// Int64 returns a pointer to v, for ModelOptions.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v, for ModelOptions.
func String(v string) *string { return &v }

// ModelSet stores a serialized model. The payload is split into chunks of at
// most ChunkSize bytes, laid out according to the builder's ChunkLayout.
func (b *Builder) ModelSet(name, backend, device string, data []byte, opts ModelOptions) (message.Command, error) {
	args := message.Command{
		message.Str(CmdModelSet),
		message.Str(name),
		message.Str(backend),
		message.Str(device),
	}
	if opts.Batch != nil {
		args = append(args, message.Str(argBatchSize), message.Int(*opts.Batch))
	}
	if opts.MinBatch != nil {
		args = append(args, message.Str(argMinBatchSize), message.Int(*opts.MinBatch))
	}
	if opts.Tag != nil {
		args = append(args, message.Str(argTag), message.Str(*opts.Tag))
	}

	if strings.EqualFold(backend, "TF") {
		if isEmpty(opts.Inputs) || isEmpty(opts.Outputs) {
			return nil, b.fail("ModelSet", &ValidationError{
				Op:     "ModelSet",
				Reason: "TF models require INPUTS and OUTPUTS",
			})
		}
		args = appendNames(args, argInputs, opts.Inputs)
		args = appendNames(args, argOutputs, opts.Outputs)
	}

	chunks := splitChunks(data, b.chunkSize)
	if len(chunks) > 1 {
		b.logger.Debug("splitting model blob",
			zap.String("model", name),
			zap.Int("bytes", len(data)),
			zap.Int("chunks", len(chunks)),
			zap.Stringer("layout", b.layout),
		)
	}

	size := len(args) + 2 + len(chunks) - 1
	if b.layout == ChunkRepeatPrefix {
		size += (len(chunks) - 1) * len(args)
	}
	cmd := make(message.Command, 0, size)
	cmd = append(cmd, args...)
	cmd = append(cmd, message.Str(argBlob), message.Bytes(chunks[0]))
	for _, chunk := range chunks[1:] {
		if b.layout == ChunkRepeatPrefix {
			cmd = append(cmd, args...)
		}
		cmd = append(cmd, message.Bytes(chunk))
	}
	return cmd, nil
}

// splitChunks slices data into consecutive segments of at most size bytes.
// The segments alias data. Empty data yields a single empty segment.
func splitChunks(data []byte, size int) [][]byte {
	if len(data) == 0 {
		return [][]byte{data}
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	chunks := make([][]byte, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end:end])
	}
	return chunks
}

// ModelGet fetches a model's metadata and, unless metaOnly, its blob.
func (b *Builder) ModelGet(name string, metaOnly bool) message.Command {
	cmd := message.Command{message.Str(CmdModelGet), message.Str(name), message.Str(argMeta)}
	if !metaOnly {
		cmd = append(cmd, message.Str(argBlob))
	}
	return cmd
}

// ModelDel deletes a model.
func (b *Builder) ModelDel(name string) message.Command {
	return message.Command{message.Str(CmdModelDel), message.Str(name)}
}

// ModelRun runs a model over the input tensor keys, storing results under the
// output keys.
func (b *Builder) ModelRun(name string, inputs, outputs NameList) message.Command {
	cmd := message.Command{message.Str(CmdModelRun), message.Str(name)}
	cmd = appendNames(cmd, argInputs, inputs)
	return appendNames(cmd, argOutputs, outputs)
}

// ModelScan lists stored models.
func (b *Builder) ModelScan() message.Command {
	return message.Command{message.Str(CmdModelScan)}
}
