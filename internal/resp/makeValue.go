package resp

import "fmt"

// MakeSimpleString construct SimpleString Value from string
func MakeSimpleString(s string) Value {
	return Value{Type: TypeSimpleString, String: []byte(s)}
}

// MakeOK is the canonical +OK reply
func MakeOK() Value {
	return MakeSimpleString("OK")
}

// MakeError construct Error Value from string
func MakeError(s string) Value {
	return Value{Type: TypeError, String: []byte(s)}
}

// MakeErrorf construct Error Value with the given prefix (ERR, NOTFOUND...) and formatted message
func MakeErrorf(prefix, format string, args ...any) Value {
	return MakeError(prefix + " " + fmt.Sprintf(format, args...))
}

// MakeErrorWrongNumberOfArguments construct Error Value that command had wrong number of arguments
func MakeErrorWrongNumberOfArguments(cmd string) Value {
	return MakeErrorf("ERR", "wrong number of arguments for '%s' command", cmd)
}

// MakeBulkString construct BulkString Value from string
func MakeBulkString(s string) Value {
	return Value{Type: TypeBulkString, String: []byte(s)}
}

// MakeNilBulkString construct nil BulkSting Value
func MakeNilBulkString() Value {
	return Value{Type: TypeBulkString, IsNull: true}
}

// MakeInteger construct Integer Value from int64
func MakeInteger(n int64) Value {
	return Value{Type: TypeInteger, Integer: n}
}

// MakeArray creates a standard RESP array containing the provided elements
func MakeArray(values []Value) Value {
	return Value{Type: TypeArray, Array: values}
}

// MakeBulkStringArray creates an array of bulk strings, e.g. a client command
func MakeBulkStringArray(strs ...string) Value {
	values := make([]Value, len(strs))
	for i, s := range strs {
		values[i] = MakeBulkString(s)
	}
	return MakeArray(values)
}
