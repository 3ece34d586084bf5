package codec

import (
	"strings"

	"github.com/pkg/errors"

	"redisai-go/message"
)

type CodecType byte

const (
	CodecTypeJSON CodecType = 0
	CodecTypeRESP CodecType = 1
)

func (t CodecType) String() string {
	if t == CodecTypeJSON {
		return "json"
	}
	return "resp"
}

// Codec serializes a single command.
type Codec interface {
	Encode(cmd message.Command) ([]byte, error)
	Decode(data []byte, cmd *message.Command) error
	Type() CodecType // 0=JSON, 1=RESP
}

func GetCodec(codecType CodecType) Codec {
	if codecType == CodecTypeJSON {
		return &JSONCodec{}
	}

	return &RESPCodec{}
}

// ParseCodecType maps a format name ("json" or "resp") to its CodecType.
func ParseCodecType(name string) (CodecType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return CodecTypeJSON, nil
	case "resp":
		return CodecTypeRESP, nil
	default:
		return 0, errors.Errorf("unknown codec %q, supported: json, resp", name)
	}
}
