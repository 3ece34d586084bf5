package codec

import (
	"strings"
	"testing"

	"redisai-go/message"
)

func sampleCommand() message.Command {
	return message.Command{
		message.Str("AI.TENSORSET"),
		message.Str("k"),
		message.Str("FLOAT"),
		message.Int(2),
		message.Int(-3),
		message.Str("BLOB"),
		message.Bytes([]byte{0x00, 0x80, 0x3f, '"'}),
	}
}

func TestJSONCodec(t *testing.T) {
	jsonCodec := &JSONCodec{}
	original := sampleCommand()

	data, err := jsonCodec.Encode(original)
	if err != nil {
		t.Fatalf("JSONCodec Encode failed: %v", err)
	}
	want := `["AI.TENSORSET","k","FLOAT",2,-3,"BLOB",{"blob":"AIA/Ig=="}]`
	if string(data) != want {
		t.Errorf("JSON mismatch: got %s, want %s", data, want)
	}

	var decoded message.Command
	if err := jsonCodec.Decode(data, &decoded); err != nil {
		t.Fatalf("JSONCodec Decode failed: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("command mismatch: got %v, want %v", decoded, original)
	}
}

func TestJSONCodecDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"not an array": `{"a":1}`,
		"float token":  `["AI.INFO",1.5]`,
		"bool token":   `["AI.INFO",true]`,
		"bad blob":     `["AI.INFO",{"blob":"!!"}]`,
		"extra keys":   `["AI.INFO",{"blob":"","x":1}]`,
	}
	for name, in := range tests {
		var cmd message.Command
		if err := (&JSONCodec{}).Decode([]byte(in), &cmd); err == nil {
			t.Errorf("%s: expect error, got nil", name)
		}
	}
}

func TestRESPCodec(t *testing.T) {
	respCodec := &RESPCodec{}
	original := sampleCommand()

	data, err := respCodec.Encode(original)
	if err != nil {
		t.Fatalf("RESPCodec Encode failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "*7\r\n$12\r\nAI.TENSORSET\r\n") {
		t.Errorf("unexpected frame start: %q", data)
	}

	var decoded message.Command
	if err := respCodec.Decode(data, &decoded); err != nil {
		t.Fatalf("RESPCodec Decode failed: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("length mismatch: got %d, want %d", len(decoded), len(original))
	}
	for i := range decoded {
		if decoded[i].Kind != message.KindBlob {
			t.Errorf("token %d kind mismatch: got %v, want blob", i, decoded[i].Kind)
		}
		if string(decoded[i].Data) != string(original[i].Raw()) {
			t.Errorf("token %d mismatch: got %q, want %q", i, decoded[i].Data, original[i].Raw())
		}
	}

	if err := respCodec.Decode(append(data, '*'), &decoded); err == nil {
		t.Error("expect error for trailing bytes")
	}
}

func TestGetCodec(t *testing.T) {
	if GetCodec(CodecTypeJSON).Type() != CodecTypeJSON {
		t.Error("expect JSON codec")
	}
	if GetCodec(CodecTypeRESP).Type() != CodecTypeRESP {
		t.Error("expect RESP codec")
	}

	for in, want := range map[string]CodecType{"json": CodecTypeJSON, "RESP": CodecTypeRESP} {
		got, err := ParseCodecType(in)
		if err != nil || got != want {
			t.Errorf("ParseCodecType(%q) mismatch: got %v/%v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseCodecType("msgpack"); err == nil {
		t.Error("expect error for unknown codec")
	}
}
