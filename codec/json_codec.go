package codec

import (
	"encoding/base64"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"redisai-go/message"
)

// blobKey wraps binary tokens so they survive JSON: {"blob": "<base64>"}.
const blobKey = "blob"

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	UseNumber:              true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// JSONCodec renders a command as a JSON array for inspection and dry runs.
// Text tokens become strings, integer tokens numbers and blobs
// {"blob": "<base64>"} objects, so token kinds are preserved on decode.
type JSONCodec struct{}

func (c *JSONCodec) Encode(cmd message.Command) ([]byte, error) {
	out := make([]interface{}, len(cmd))
	for i, tok := range cmd {
		switch tok.Kind {
		case message.KindInt:
			out[i] = tok.Num
		case message.KindBlob:
			data := tok.Data
			if data == nil {
				data = []byte{}
			}
			out[i] = map[string][]byte{blobKey: data}
		default:
			out[i] = tok.Text
		}
	}
	return jsonAPI.Marshal(out)
}

func (c *JSONCodec) Decode(data []byte, cmd *message.Command) error {
	var raw []interface{}
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "JSONCodec: decode")
	}
	out := make(message.Command, len(raw))
	for i, v := range raw {
		switch x := v.(type) {
		case string:
			out[i] = message.Str(x)
		case json.Number:
			n, err := x.Int64()
			if err != nil {
				return errors.Wrapf(err, "JSONCodec: token %d", i)
			}
			out[i] = message.Int(n)
		case map[string]interface{}:
			blob, err := decodeBlob(x)
			if err != nil {
				return errors.Wrapf(err, "JSONCodec: token %d", i)
			}
			out[i] = message.Bytes(blob)
		default:
			return errors.Errorf("JSONCodec: token %d has unsupported JSON type %T", i, v)
		}
	}
	*cmd = out
	return nil
}

func decodeBlob(obj map[string]interface{}) ([]byte, error) {
	enc, ok := obj[blobKey].(string)
	if !ok || len(obj) != 1 {
		return nil, errors.Errorf("blob object must hold a single %q string", blobKey)
	}
	return base64.StdEncoding.DecodeString(enc)
}

func (c *JSONCodec) Type() CodecType {
	return CodecTypeJSON
}
