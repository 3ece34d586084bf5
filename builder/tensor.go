package builder

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"redisai-go/message"
)

// TensorInput is the payload of a TensorSet call. It is sealed: the only
// variants are ArrayInput and SequenceInput. Any other value, nil included,
// is rejected with a TypeError.
type TensorInput interface {
	tensorInput()
}

// Element is a Go type that maps onto a fixed-size RedisAI dtype.
type Element interface {
	float32 | float64 | int8 | int16 | int32 | int64 | uint8 | uint16 | bool
}

// Scalar is a Go type accepted as a literal tensor value.
type Scalar interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | bool | string
}

// ArrayInput is a dense multi-dimensional array. Its dtype and shape travel
// with the data, and the payload is sent as a single row-major blob in
// little-endian byte order.
type ArrayInput struct {
	dtype string
	shape []int64
	blob  []byte
}

func (ArrayInput) tensorInput() {}

// Dtype returns the wire dtype token.
func (a ArrayInput) Dtype() string { return a.dtype }

// Shape returns a copy of the array dimensions.
func (a ArrayInput) Shape() []int64 { return append([]int64(nil), a.shape...) }

// Blob returns the encoded payload.
func (a ArrayInput) Blob() []byte { return a.blob }

// NewArray encodes data as an array of the given shape. With no shape the
// array is one-dimensional. The product of shape must equal len(data).
func NewArray[T Element](data []T, shape ...int64) (ArrayInput, error) {
	if len(shape) == 0 {
		shape = []int64{int64(len(data))}
	}
	n, err := elements("NewArray", shape)
	if err != nil {
		return ArrayInput{}, err
	}
	if n != int64(len(data)) {
		return ArrayInput{}, &ValidationError{
			Op:     "NewArray",
			Reason: fmt.Sprintf("shape %v holds %d elements, data has %d", shape, n, len(data)),
		}
	}
	blob, err := binary.Append(make([]byte, 0, binary.Size(data)), binary.LittleEndian, data)
	if err != nil {
		return ArrayInput{}, err
	}
	return ArrayInput{
		dtype: elementDtype[T](),
		shape: append([]int64(nil), shape...),
		blob:  blob,
	}, nil
}

// ArrayFromBlob wraps an already encoded row-major payload. dtype is a dtype
// name (see SupportedDtypes) with a fixed element width; the blob length must
// equal product(shape) * width.
func ArrayFromBlob(dtype string, shape []int64, blob []byte) (ArrayInput, error) {
	token, ok := LookupDtype(dtype)
	if !ok {
		return ArrayInput{}, unsupportedDtype("ArrayFromBlob", dtype)
	}
	size, ok := DtypeSize(token)
	if !ok {
		return ArrayInput{}, &TypeError{
			Op:     "ArrayFromBlob",
			Reason: fmt.Sprintf("dtype %s has no fixed element size", token),
		}
	}
	n, err := elements("ArrayFromBlob", shape)
	if err != nil {
		return ArrayInput{}, err
	}
	if n > math.MaxInt64/int64(size) {
		return ArrayInput{}, &ValidationError{
			Op:     "ArrayFromBlob",
			Reason: fmt.Sprintf("shape %v of %s overflows the byte length", shape, token),
		}
	}
	if want := n * int64(size); want != int64(len(blob)) {
		return ArrayInput{}, &ValidationError{
			Op:     "ArrayFromBlob",
			Reason: fmt.Sprintf("shape %v of %s needs %d bytes, blob has %d", shape, token, want, len(blob)),
		}
	}
	return ArrayInput{dtype: token, shape: append([]int64(nil), shape...), blob: blob}, nil
}

func elements(op string, shape []int64) (int64, error) {
	n := int64(1)
	for _, dim := range shape {
		if dim < 0 {
			return 0, &ValidationError{Op: op, Reason: fmt.Sprintf("negative dimension in shape %v", shape)}
		}
		if dim != 0 && n > math.MaxInt64/dim {
			return 0, &ValidationError{Op: op, Reason: fmt.Sprintf("shape %v overflows the element count", shape)}
		}
		n *= dim
	}
	return n, nil
}

func elementDtype[T Element]() string {
	var zero T
	switch any(zero).(type) {
	case float32:
		return DtypeFloat
	case float64:
		return DtypeDouble
	case int8:
		return DtypeInt8
	case int16:
		return DtypeInt16
	case int32:
		return DtypeInt32
	case int64:
		return DtypeInt64
	case uint8:
		return DtypeUint8
	case uint16:
		return DtypeUint16
	default:
		return DtypeBool
	}
}

// SequenceInput is a flat list of literal values sent after VALUES. Its dtype
// must be named explicitly on TensorSet.
type SequenceInput struct {
	values []message.Token
}

func (SequenceInput) tensorInput() {}

// Len returns the number of values.
func (s SequenceInput) Len() int { return len(s.values) }

// Values builds a SequenceInput from typed scalars.
func Values[T Scalar](vs ...T) SequenceInput {
	tokens := make([]message.Token, len(vs))
	for i, v := range vs {
		// every Scalar type is handled by scalarToken
		tokens[i], _ = scalarToken(v)
	}
	return SequenceInput{values: tokens}
}

// ValuesOf builds a SequenceInput from untyped values, as decoded from a
// config file. Every element must be one of the Scalar types.
func ValuesOf(vs []interface{}) (SequenceInput, error) {
	tokens := make([]message.Token, len(vs))
	for i, v := range vs {
		tok, err := scalarToken(v)
		if err != nil {
			return SequenceInput{}, err
		}
		tokens[i] = tok
	}
	return SequenceInput{values: tokens}, nil
}

func scalarToken(v interface{}) (message.Token, error) {
	switch x := v.(type) {
	case int:
		return message.Int(int64(x)), nil
	case int8:
		return message.Int(int64(x)), nil
	case int16:
		return message.Int(int64(x)), nil
	case int32:
		return message.Int(int64(x)), nil
	case int64:
		return message.Int(x), nil
	case uint:
		return uintToken(uint64(x)), nil
	case uint8:
		return message.Int(int64(x)), nil
	case uint16:
		return message.Int(int64(x)), nil
	case uint32:
		return message.Int(int64(x)), nil
	case uint64:
		return uintToken(x), nil
	case float32:
		return message.Str(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case float64:
		return message.Str(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case bool:
		if x {
			return message.Int(1), nil
		}
		return message.Int(0), nil
	case string:
		return message.Str(x), nil
	default:
		return message.Token{}, &TypeError{
			Op:     "ValuesOf",
			Reason: fmt.Sprintf("unsupported tensor value %v of type %T", v, v),
		}
	}
}

func uintToken(x uint64) message.Token {
	if x > math.MaxInt64 {
		return message.Str(strconv.FormatUint(x, 10))
	}
	return message.Int(int64(x))
}

func unsupportedDtype(op, dtype string) error {
	return &TypeError{
		Op:     op,
		Reason: fmt.Sprintf("%q is not supported by RedisAI, supported types are %v", dtype, SupportedDtypes()),
	}
}

// TensorSet stores a tensor under key.
//
// For an ArrayInput the dtype and shape come from the array and the shape and
// dtype arguments are ignored. For a SequenceInput dtype is required and shape
// defaults to [len(values)].
func (b *Builder) TensorSet(key string, tensor TensorInput, shape []int64, dtype string) (message.Command, error) {
	const op = "TensorSet"
	switch t := tensor.(type) {
	case ArrayInput:
		if t.dtype == "" {
			return nil, b.fail(op, &TypeError{
				Op:     op,
				Reason: "ArrayInput must be built with NewArray or ArrayFromBlob, but got a zero value",
			})
		}
		cmd := make(message.Command, 0, 5+len(t.shape))
		cmd = append(cmd, message.Str(CmdTensorSet), message.Str(key), message.Str(t.dtype))
		cmd = appendShape(cmd, t.shape)
		return append(cmd, message.Str(argBlob), message.Bytes(t.blob)), nil
	case SequenceInput:
		token, ok := LookupDtype(dtype)
		if !ok {
			return nil, b.fail(op, unsupportedDtype(op, dtype))
		}
		if shape == nil {
			shape = []int64{int64(len(t.values))}
		}
		cmd := make(message.Command, 0, 4+len(shape)+len(t.values))
		cmd = append(cmd, message.Str(CmdTensorSet), message.Str(key), message.Str(token))
		cmd = appendShape(cmd, shape)
		cmd = append(cmd, message.Str(argValues))
		return append(cmd, t.values...), nil
	default:
		err := &TypeError{
			Op:     op,
			Reason: fmt.Sprintf("tensor argument must be an ArrayInput or a SequenceInput, but got %T", tensor),
		}
		return nil, b.fail(op, err)
	}
}

func appendShape(cmd message.Command, shape []int64) message.Command {
	for _, dim := range shape {
		cmd = append(cmd, message.Int(dim))
	}
	return cmd
}

// TensorGet fetches a tensor's metadata and, unless metaOnly, its payload as a
// BLOB (asNumeric) or as VALUES.
func (b *Builder) TensorGet(key string, asNumeric, metaOnly bool) message.Command {
	cmd := message.Command{message.Str(CmdTensorGet), message.Str(key), message.Str(argMeta)}
	if metaOnly {
		return cmd
	}
	if asNumeric {
		return append(cmd, message.Str(argBlob))
	}
	return append(cmd, message.Str(argValues))
}
