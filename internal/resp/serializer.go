package resp

import (
	"bytes"
)

// EncodeCommand renders a client command as an array of bulk strings
func EncodeCommand(name string, args ...string) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Write(MakeBulkStringArray(append([]string{name}, args...)...)); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
