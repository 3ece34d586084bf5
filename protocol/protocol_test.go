package protocol

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"redisai-go/message"
)

func TestEncode(t *testing.T) {
	cmd := message.Command{
		message.Str("AI.TENSORSET"), message.Str("k"), message.Str("FLOAT"), message.Int(2),
		message.Str("BLOB"), message.Bytes([]byte{0x00, '\r', '\n', 0xff}),
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cmd); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := "*6\r\n$12\r\nAI.TENSORSET\r\n$1\r\nk\r\n$5\r\nFLOAT\r\n$1\r\n2\r\n$4\r\nBLOB\r\n$4\r\n\x00\r\n\xff\r\n"
	if buf.String() != want {
		t.Errorf("frame mismatch:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestEncodeDecode(t *testing.T) {
	cmds := []message.Command{
		{message.Str("AI._MODELSCAN")},
		{message.Str("AI.INFO"), message.Str("m"), message.Str("RESETSTAT")},
		{message.Str("AI.MODELSET"), message.Str("m"), message.Str("BLOB"), message.Bytes(nil)},
	}

	var buf bytes.Buffer
	for _, cmd := range cmds {
		if err := Encode(&buf, cmd); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	r := bufio.NewReader(&buf)
	for _, cmd := range cmds {
		args, err := Decode(r)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(args) != len(cmd) {
			t.Fatalf("argument count mismatch: got %d, want %d", len(args), len(cmd))
		}
		for i := range args {
			if !bytes.Equal(args[i], cmd[i].Raw()) {
				t.Errorf("argument %d mismatch: got %q, want %q", i, args[i], cmd[i].Raw())
			}
		}
	}
	if buf.Len() != 0 {
		t.Errorf("expect stream fully consumed, %d bytes left", buf.Len())
	}
}

func TestEncodeEmpty(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("expect error for empty command")
	}
}

func TestDecodeInvalidMarker(t *testing.T) {
	_, err := Decode(bufio.NewReader(strings.NewReader("+OK\r\n")))
	if err == nil {
		t.Fatal("expect error for invalid marker")
	}
	if !strings.Contains(err.Error(), "invalid type marker") {
		t.Errorf("error should mention the marker, instead: %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := map[string]string{
		"zero args":      "*0\r\n",
		"bad count":      "*x\r\n",
		"no cr":          "*1\n",
		"bad bulk":       "*1\r\n:1\r\n",
		"negative bulk":  "*1\r\n$-1\r\n",
		"missing crlf":   "*1\r\n$2\r\nabcd",
		"truncated bulk": "*1\r\n$10\r\nabc",
	}
	for name, in := range tests {
		if _, err := Decode(bufio.NewReader(strings.NewReader(in))); err == nil {
			t.Errorf("%s: expect error, got nil", name)
		}
	}
}

func TestDecodeLargeBulk(t *testing.T) {
	payload := make([]byte, 1024*1024)
	for i := range payload {
		payload[i] = byte(i % 256)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, message.Command{message.Str("AI.MODELSET"), message.Bytes(payload)}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	args, err := Decode(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(args[1], payload) {
		t.Error("large bulk content mismatch")
	}
}
