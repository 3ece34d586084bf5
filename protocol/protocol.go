// Package protocol implements RESP request framing for RedisAI commands.
//
// Redis reads every request as an array of bulk strings. The receiver reads
// the array header to learn how many arguments follow, then each bulk header
// to learn exactly how many bytes to read, so binary payloads need no escaping.
//
// Frame format:
//
//	*<argc>\r\n
//	$<len>\r\n<len bytes>\r\n    (repeated argc times)
//
// A stream of frames is what `redis-cli --pipe` consumes.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"redisai-go/message"
)

// Type markers.
const (
	ArrayMarker byte = '*'
	BulkMarker  byte = '$'
)

// MaxBulkLen mirrors Redis' default proto-max-bulk-len (512 MiB). The server
// refuses any single argument larger than this, which is why model blobs are
// chunked below it.
const MaxBulkLen = 512 * 1024 * 1024

// maxArgs bounds the array length accepted by Decode.
const maxArgs = 1024 * 1024

var crlf = []byte("\r\n")

// Encode writes cmd to w as one RESP array frame.
// The caller must serialize writes if multiple goroutines share w, otherwise
// frames from different commands will interleave and corrupt the stream.
func Encode(w io.Writer, cmd message.Command) error {
	if len(cmd) == 0 {
		return fmt.Errorf("empty command")
	}
	bw := bufio.NewWriter(w)

	// Array header: number of arguments
	if err := writeHeader(bw, ArrayMarker, len(cmd)); err != nil {
		return err
	}
	for i, tok := range cmd {
		raw := tok.Raw()
		if len(raw) > MaxBulkLen {
			return fmt.Errorf("argument %d of %s is %d bytes, exceeds max bulk length %d", i, cmd.Name(), len(raw), MaxBulkLen)
		}
		// Bulk header: argument length in bytes
		if err := writeHeader(bw, BulkMarker, len(raw)); err != nil {
			return err
		}
		if _, err := bw.Write(raw); err != nil {
			return err
		}
		if _, err := bw.Write(crlf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeHeader(w *bufio.Writer, marker byte, n int) error {
	if err := w.WriteByte(marker); err != nil {
		return err
	}
	if _, err := w.WriteString(strconv.Itoa(n)); err != nil {
		return err
	}
	_, err := w.Write(crlf)
	return err
}

// Decode reads one RESP array frame from r and returns its arguments.
// It validates markers, lengths and terminators. Uses io.ReadFull so that
// binary arguments are read exactly, never partially.
func Decode(r *bufio.Reader) ([][]byte, error) {
	// Step 1: array header
	argc, err := readHeader(r, ArrayMarker)
	if err != nil {
		return nil, err
	}
	if argc < 1 || argc > maxArgs {
		return nil, fmt.Errorf("invalid argument count: %d", argc)
	}

	args := make([][]byte, argc)
	for i := range args {
		// Step 2: bulk header
		n, err := readHeader(r, BulkMarker)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > MaxBulkLen {
			return nil, fmt.Errorf("invalid bulk length: %d", n)
		}
		// Step 3: exactly n bytes plus CRLF
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		if buf[n] != '\r' || buf[n+1] != '\n' {
			return nil, fmt.Errorf("missing CRLF after bulk argument %d", i)
		}
		args[i] = buf[:n:n]
	}
	return args, nil
}

func readHeader(r *bufio.Reader, marker byte) (int, error) {
	line, err := r.ReadSlice('\n')
	if err != nil {
		return 0, err
	}
	if len(line) < 3 || line[len(line)-2] != '\r' {
		return 0, fmt.Errorf("malformed header line: %q", line)
	}
	if line[0] != marker {
		return 0, fmt.Errorf("invalid type marker: got %q, want %q", line[0], marker)
	}
	n, err := strconv.Atoi(string(line[1 : len(line)-2]))
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", line[1:len(line)-2], err)
	}
	return n, nil
}
