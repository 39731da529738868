package structdiff

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeChanges writes a change list to w in msgpack encoding, using the
// same wire shape as the JSON representation. Useful when change records
// cross a binary boundary such as a log or store.
func EncodeChanges(w io.Writer, cs Changes) error {
	wire := make([]*wireChange, len(cs))
	for i, c := range cs {
		wire[i] = toWire(c)
	}
	return msgpack.NewEncoder(w).Encode(wire)
}

// DecodeChanges reads a msgpack-encoded change list from r
func DecodeChanges(r io.Reader) (Changes, error) {
	var wire []*wireChange
	if err := msgpack.NewDecoder(r).Decode(&wire); err != nil {
		return nil, err
	}
	out := make(Changes, len(wire))
	for i, w := range wire {
		c, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
