package resp

// RESP2 type prefixes
const (
	TypeSimpleString = '+'
	TypeError        = '-'
	TypeInteger      = ':'
	TypeBulkString   = '$'
	TypeArray        = '*'
)

// Value is a single decoded or to-be-encoded RESP2 frame
type Value struct {
	String  []byte  // SimpleString, Error, BulkString
	Array   []Value // Array
	Integer int64   // Integer
	Type    byte
	IsNull  bool // nil BulkString and nil Array
}

// Text returns the string payload
func (v Value) Text() string {
	return string(v.String)
}
