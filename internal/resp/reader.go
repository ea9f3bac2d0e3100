package resp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrInvalidEnding  = errors.New("invalid line ending")
	ErrUnexpectedType = errors.New("unexpected type")
	ErrInvalidLength  = errors.New("invalid length")
)

// maxBulkLength mirrors the 512MB limit of redis proto-max-bulk-len
const maxBulkLength = 512 * 1024 * 1024

// Decoder reads RESP2 values from a buffered stream
type Decoder struct {
	rd *bufio.Reader
}

// NewDecoder wraps rd into a buffered Decoder
func NewDecoder(rd io.Reader) *Decoder {
	return &Decoder{rd: bufio.NewReader(rd)}
}

// Buffered returns the number of bytes that can be read from the current buffer
func (d *Decoder) Buffered() int {
	return d.rd.Buffered()
}

// Read decodes the next value. io.EOF is returned unchanged on a clean end of stream
func (d *Decoder) Read() (Value, error) {
	typ, err := d.rd.ReadByte()
	if err != nil {
		return Value{}, err
	}

	val := Value{Type: typ}

	switch typ {
	case TypeSimpleString, TypeError:
		str, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		val.String = str
		return val, nil

	case TypeInteger:
		num, err := d.readInteger()
		if err != nil {
			return Value{}, err
		}
		val.Integer = num
		return val, nil

	case TypeBulkString:
		return d.readBulkString()

	case TypeArray:
		return d.readArray()
	}

	return Value{}, fmt.Errorf("%w: %q", ErrUnexpectedType, typ)
}

// readLine reads up to CRLF and returns the line without it
func (d *Decoder) readLine() ([]byte, error) {
	line, err := d.rd.ReadBytes('\n')
	if err != nil {
		return nil, err
	}

	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, ErrInvalidEnding
	}

	return line[:len(line)-2], nil
}

func (d *Decoder) readInteger() (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}

	// integer line cant be empty
	if len(line) == 0 {
		return 0, ErrInvalidEnding
	}

	return strconv.ParseInt(string(line), 10, 64)
}

func (d *Decoder) readBulkString() (Value, error) {
	n, err := d.readInteger()
	if err != nil {
		return Value{}, err
	}

	if n == -1 {
		return MakeNilBulkString(), nil
	}
	if n < 0 || n > maxBulkLength {
		return Value{}, ErrInvalidLength
	}

	// payload plus CRLF
	buf := make([]byte, n+2)
	if _, err := io.ReadFull(d.rd, buf); err != nil {
		return Value{}, err
	}
	if buf[n] != '\r' || buf[n+1] != '\n' {
		return Value{}, ErrInvalidEnding
	}

	return Value{Type: TypeBulkString, String: buf[:n]}, nil
}

func (d *Decoder) readArray() (Value, error) {
	n, err := d.readInteger()
	if err != nil {
		return Value{}, err
	}

	if n == -1 {
		return Value{Type: TypeArray, IsNull: true}, nil
	}
	if n < 0 || n > maxBulkLength {
		return Value{}, ErrInvalidLength
	}

	arr := make([]Value, 0, min(n, 1024))
	for i := int64(0); i < n; i++ {
		v, err := d.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Value{}, io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
		arr = append(arr, v)
	}

	return Value{Type: TypeArray, Array: arr}, nil
}
