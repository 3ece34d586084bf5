// Package message defines the command structure handed to a Redis transport.
//
// A Command is the "envelope" for every RedisAI call: an ordered list of tokens,
// the first of which is the command name. Commands are built by the builder
// package, serialized by the codec layer and written by whatever client owns
// the connection.
package message

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Kind tells which field of a Token carries its value.
type Kind uint8

const (
	KindText Kind = iota // UTF-8 text, e.g. a command name or key
	KindInt              // Integer argument, e.g. a shape dimension
	KindBlob             // Raw binary payload, e.g. a tensor or model blob
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindBlob:
		return "blob"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one positional element of a command.
//
//   - KindText: Text holds the value.
//   - KindInt:  Num holds the value.
//   - KindBlob: Data holds the value. Data is not copied on construction, so a
//     blob token may alias a caller's buffer (model chunks are sub-slices).
type Token struct {
	Kind Kind
	Text string
	Num  int64
	Data []byte
}

// Str returns a text token.
func Str(s string) Token {
	return Token{Kind: KindText, Text: s}
}

// Int returns an integer token.
func Int(n int64) Token {
	return Token{Kind: KindInt, Num: n}
}

// Bytes returns a blob token referencing b.
func Bytes(b []byte) Token {
	return Token{Kind: KindBlob, Data: b}
}

// Value returns the token as the plain Go value Redis clients accept as an
// argument: string, int64 or []byte.
func (t Token) Value() interface{} {
	switch t.Kind {
	case KindInt:
		return t.Num
	case KindBlob:
		return t.Data
	default:
		return t.Text
	}
}

// Raw returns the bytes the token occupies on the wire.
func (t Token) Raw() []byte {
	switch t.Kind {
	case KindInt:
		return strconv.AppendInt(nil, t.Num, 10)
	case KindBlob:
		return t.Data
	default:
		return []byte(t.Text)
	}
}

// Equal reports whether both tokens have the same kind and value.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindInt:
		return t.Num == o.Num
	case KindBlob:
		return bytes.Equal(t.Data, o.Data)
	default:
		return t.Text == o.Text
	}
}

func (t Token) String() string {
	switch t.Kind {
	case KindInt:
		return strconv.FormatInt(t.Num, 10)
	case KindBlob:
		return fmt.Sprintf("<blob %d bytes>", len(t.Data))
	default:
		return t.Text
	}
}

// Command is an ordered token sequence: {command-name, arguments...}.
type Command []Token

// Name returns the first token's text, or "" for an empty command.
func (c Command) Name() string {
	if len(c) == 0 {
		return ""
	}
	return c[0].Text
}

// Args converts the command into the variadic form used by Redis clients,
// e.g. go-redis' Do(ctx, cmd.Args()...).
func (c Command) Args() []interface{} {
	args := make([]interface{}, len(c))
	for i, tok := range c {
		args[i] = tok.Value()
	}
	return args
}

// Equal reports whether both commands hold equal tokens in the same order.
func (c Command) Equal(o Command) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if !c[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// String renders the command space separated, with blobs abbreviated.
func (c Command) String() string {
	parts := make([]string, len(c))
	for i, tok := range c {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}
