package codec

import (
	"bufio"
	"bytes"

	"github.com/pkg/errors"

	"redisai-go/message"
	"redisai-go/protocol"
)

// RESPCodec renders a command as the RESP array Redis reads off the socket.
// RESP carries no token kinds, so every decoded token is a blob.
type RESPCodec struct{}

func (c *RESPCodec) Encode(cmd message.Command) ([]byte, error) {
	var buf bytes.Buffer
	if err := protocol.Encode(&buf, cmd); err != nil {
		return nil, errors.Wrap(err, "RESPCodec: encode")
	}
	return buf.Bytes(), nil
}

func (c *RESPCodec) Decode(data []byte, cmd *message.Command) error {
	r := bufio.NewReader(bytes.NewReader(data))
	args, err := protocol.Decode(r)
	if err != nil {
		return errors.Wrap(err, "RESPCodec: decode")
	}
	if r.Buffered() > 0 {
		return errors.Errorf("RESPCodec: %d trailing bytes after frame", r.Buffered())
	}
	out := make(message.Command, len(args))
	for i, arg := range args {
		out[i] = message.Bytes(arg)
	}
	*cmd = out
	return nil
}

func (c *RESPCodec) Type() CodecType {
	return CodecTypeRESP
}
