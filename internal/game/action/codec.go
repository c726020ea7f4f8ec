package action

import "github.com/samber/oops"

// FormatVersion is the current wire format version. Decode rejects any other.
const FormatVersion uint8 = 1

// Encode writes a's type id, the format version, and then a.Serialise.
// Network replication and the journal share this encoding.
//
// Postcondition: Equal actions always encode to identical bytes.
func Encode(a Action) []byte {
	s := NewWriter()
	t := a.Type()
	version := FormatVersion
	visitUint16(s, "type", &t)
	s.Uint8("version", &version)
	a.Serialise(s)
	return s.Bytes()
}

// Decode reverses Encode, constructing the action through reg.
//
// Postcondition: Returns a coded error when the data is truncated, carries
// an unknown type or version, visits fields out of order, or has trailing
// bytes.
func Decode(reg *Registry, data []byte) (Action, error) {
	s := NewReader(data)
	var t Type
	var version uint8
	visitUint16(s, "type", &t)
	s.Uint8("version", &version)
	if err := s.Err(); err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, oops.Code(CodeVersion).With("version", version).Errorf("unsupported action format version %d", version)
	}
	a, err := reg.New(t)
	if err != nil {
		return nil, err
	}
	a.Serialise(s)
	if err := s.Err(); err != nil {
		return nil, oops.With("action", a.Name()).Wrap(err)
	}
	if s.Remaining() > 0 {
		return nil, oops.Code(CodeTrailingData).With("action", a.Name()).Errorf("%d trailing bytes after %s", s.Remaining(), a.Name())
	}
	return a, nil
}
