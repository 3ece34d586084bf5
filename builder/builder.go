// Package builder turns RedisAI operations into command token sequences.
//
// Every method is a pure mapping from typed arguments to a message.Command:
// nothing is sent, cached or remembered. The returned command is meant to be
// handed verbatim to a Redis client, for example:
//
//	cmd, err := b.TensorSet("k", builder.Values(1, 2, 3, 4), nil, "float32")
//	if err != nil { ... }
//	reply, err := rdb.Do(ctx, cmd.Args()...).Result()
//
// Replies are never interpreted here.
package builder

import (
	"strings"

	"go.uber.org/zap"

	"redisai-go/message"
)

// Command names accepted by the RedisAI module.
const (
	CmdConfig     = "AI.CONFIG"
	CmdModelSet   = "AI.MODELSET"
	CmdModelGet   = "AI.MODELGET"
	CmdModelDel   = "AI.MODELDEL"
	CmdModelRun   = "AI.MODELRUN"
	CmdModelScan  = "AI._MODELSCAN"
	CmdTensorSet  = "AI.TENSORSET"
	CmdTensorGet  = "AI.TENSORGET"
	CmdScriptSet  = "AI.SCRIPTSET"
	CmdScriptGet  = "AI.SCRIPTGET"
	CmdScriptDel  = "AI.SCRIPTDEL"
	CmdScriptRun  = "AI.SCRIPTRUN"
	CmdScriptScan = "AI._SCRIPTSCAN"
	CmdInfo       = "AI.INFO"
)

// Argument keywords.
const (
	argLoadBackend  = "LOADBACKEND"
	argBatchSize    = "BATCHSIZE"
	argMinBatchSize = "MINBATCHSIZE"
	argTag          = "TAG"
	argInputs       = "INPUTS"
	argOutputs      = "OUTPUTS"
	argBlob         = "BLOB"
	argValues       = "VALUES"
	argMeta         = "META"
	argSource       = "SOURCE"
	argResetStat    = "RESETSTAT"
)

// DefaultChunkSize is the largest model blob segment placed in one argument.
// Redis rejects bulk arguments above proto-max-bulk-len (512 MiB by default).
const DefaultChunkSize = 500 * 1024 * 1024

// ChunkLayout selects how model blobs larger than the chunk size are laid out.
type ChunkLayout int

const (
	// ChunkRepeatPrefix appends, for every chunk after the first, the full
	// argument prefix (command name included) followed by the chunk.
	ChunkRepeatPrefix ChunkLayout = iota
	// ChunkContinuation writes the prefix once: BLOB chunk0 chunk1 ... chunkN.
	ChunkContinuation
)

func (l ChunkLayout) String() string {
	switch l {
	case ChunkRepeatPrefix:
		return "repeat"
	case ChunkContinuation:
		return "continuation"
	default:
		return "unknown"
	}
}

// ParseChunkLayout maps "repeat" or "continuation" (any case) to a layout.
func ParseChunkLayout(s string) (ChunkLayout, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repeat":
		return ChunkRepeatPrefix, true
	case "continuation":
		return ChunkContinuation, true
	}
	return 0, false
}

// Builder formats RedisAI commands. The zero value is not usable; call New.
// A Builder is immutable and safe for concurrent use.
type Builder struct {
	chunkSize int
	layout    ChunkLayout
	logger    *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithChunkSize overrides DefaultChunkSize. Non-positive sizes are ignored.
func WithChunkSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.chunkSize = n
		}
	}
}

// WithChunkLayout selects the multi-chunk model blob layout.
func WithChunkLayout(l ChunkLayout) Option {
	return func(b *Builder) {
		b.layout = l
	}
}

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns a Builder with the given options applied over the defaults.
func New(opts ...Option) *Builder {
	b := &Builder{
		chunkSize: DefaultChunkSize,
		layout:    ChunkRepeatPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ChunkSize returns the configured model blob chunk size.
func (b *Builder) ChunkSize() int {
	return b.chunkSize
}

// Layout returns the configured chunk layout.
func (b *Builder) Layout() ChunkLayout {
	return b.layout
}

// fail logs err at debug level and returns it unchanged.
func (b *Builder) fail(op string, err error) error {
	b.logger.Debug("redisai command rejected", zap.String("op", op), zap.Error(err))
	return err
}

// LoadBackend loads a backend library into the server.
func (b *Builder) LoadBackend(identifier, path string) message.Command {
	return message.Command{
		message.Str(CmdConfig),
		message.Str(argLoadBackend),
		message.Str(identifier),
		message.Str(path),
	}
}

// InfoGet requests run statistics of a model or script.
func (b *Builder) InfoGet(key string) message.Command {
	return message.Command{message.Str(CmdInfo), message.Str(key)}
}

// InfoReset resets the run statistics of a model or script.
func (b *Builder) InfoReset(key string) message.Command {
	return message.Command{message.Str(CmdInfo), message.Str(key), message.Str(argResetStat)}
}

// appendNames appends keyword followed by every name in list.
func appendNames(cmd message.Command, keyword string, list NameList) message.Command {
	cmd = append(cmd, message.Str(keyword))
	for _, name := range listify(list) {
		cmd = append(cmd, message.Str(name))
	}
	return cmd
}
