package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// DefaultMaxLineBytes caps a single received line.
const DefaultMaxLineBytes = 1 << 20

// Encoder writes envelopes as JSON lines. It is safe for concurrent use.
type Encoder struct {
	mu sync.Mutex
	w  io.Writer
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one message followed by a newline.
func (e *Encoder) Encode(m Message) error {
	env, err := Wrap(m)
	if err != nil {
		return err
	}
	line, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	line = append(line, '\n')

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.w.Write(line); err != nil {
		return fmt.Errorf("write %s: %w", m.Kind(), err)
	}
	return nil
}

// Decoder reads envelopes from a stream of JSON lines.
type Decoder struct {
	r       *bufio.Reader
	maxLine int
}

// NewDecoder creates a decoder. maxLine <= 0 uses DefaultMaxLineBytes.
func NewDecoder(r io.Reader, maxLine int) *Decoder {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	return &Decoder{r: bufio.NewReader(r), maxLine: maxLine}
}

// Decode returns the next message. Blank lines are skipped.
//
// A line that cannot be parsed yields an error wrapping
// entity.ErrMalformedMessage; the stream stays usable and the next call reads
// the following line. Any other error (io.EOF included) ends the stream.
func (d *Decoder) Decode() (Message, error) {
	for {
		line, err := d.readLine()
		if err != nil {
			return nil, err
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return nil, malformed("envelope: %v", err)
		}
		return Unwrap(env)
	}
}

func (d *Decoder) readLine() ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := d.r.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > d.maxLine {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			// A final line without a newline still counts.
			if errors.Is(err, io.EOF) && len(line) > 0 {
				return line, nil
			}
			return nil, err
		}
		break
	}
	if tooLong {
		return nil, malformed("line longer than %d bytes", d.maxLine)
	}
	return line, nil
}

// IsMalformed reports whether err is a recoverable decoding failure.
func IsMalformed(err error) bool {
	return errors.Is(err, entity.ErrMalformedMessage)
}
