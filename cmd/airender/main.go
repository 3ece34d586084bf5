// Command airender compiles a RedisAI deployment manifest into commands and
// writes them to stdout, either as a RESP stream suitable for
// `redis-cli --pipe` or as one JSON array per line for inspection.
//
//	airender -manifest deploy.toml | redis-cli --pipe
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"redisai-go/builder"
	"redisai-go/codec"
	"redisai-go/manifest"
)

type config struct {
	Manifest    string
	Format      string
	ChunkSize   int
	ChunkLayout string
	LogLevel    string
}

// RegisterFlags adds the flags required to config this to the given FlagSet.
func (cfg *config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&cfg.Manifest, "manifest", "", "Path to the deployment manifest (.toml, .yaml or .yml).")
	f.StringVar(&cfg.Format, "format", "resp", "Output format. Supported: resp, json.")
	f.IntVar(&cfg.ChunkSize, "chunk.size", builder.DefaultChunkSize, "Maximum bytes of model blob per argument.")
	f.StringVar(&cfg.ChunkLayout, "chunk.layout", "repeat", "Layout of chunked model blobs. Supported: repeat, continuation.")
	f.StringVar(&cfg.LogLevel, "log.level", "info", "Log level written to stderr. Supported: debug, info, warn, error.")
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "airender: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("airender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg config
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.Manifest == "" {
		return errors.New("-manifest is required")
	}
	codecType, err := codec.ParseCodecType(cfg.Format)
	if err != nil {
		return err
	}
	layout, ok := builder.ParseChunkLayout(cfg.ChunkLayout)
	if !ok {
		return errors.Errorf("unknown chunk layout %q, supported: repeat, continuation", cfg.ChunkLayout)
	}
	if cfg.ChunkSize <= 0 {
		return errors.Errorf("chunk size must be positive, got %d", cfg.ChunkSize)
	}
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return err
	}
	b := builder.New(
		builder.WithChunkSize(cfg.ChunkSize),
		builder.WithChunkLayout(layout),
		builder.WithLogger(logger),
	)
	cmds, err := m.Compile(b)
	if err != nil {
		return errors.Wrapf(err, "compile %s", cfg.Manifest)
	}

	cdc := codec.GetCodec(codecType)
	w := bufio.NewWriter(stdout)
	for _, cmd := range cmds {
		data, err := cdc.Encode(cmd)
		if err != nil {
			return errors.Wrapf(err, "render %s", cmd.Name())
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if codecType == codec.CodecTypeJSON {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		logger.Debug("rendered command", zap.String("command", cmd.Name()), zap.Int("tokens", len(cmd)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Info("manifest rendered",
		zap.String("manifest", cfg.Manifest),
		zap.Int("commands", len(cmds)),
		zap.Stringer("format", codecType),
	)
	return nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "parse -log.level")
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
