package action

import (
	"math"

	"github.com/samber/oops"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cory-johannsen/parksim/internal/game/park"
)

// Error codes carried by stream decoding failures.
const (
	CodeTruncated    = "STREAM_TRUNCATED"
	CodeFieldOrder   = "STREAM_FIELD_ORDER"
	CodeOverflow     = "STREAM_VALUE_OVERFLOW"
	CodeVersion      = "STREAM_VERSION"
	CodeTrailingData = "STREAM_TRAILING_DATA"
	CodeUnknownType  = "ACTION_UNKNOWN_TYPE"
)

// ParameterVisitor is shown every input field of an action, in declared
// order. The same order drives the wire encoding, the structural signature,
// and the parameter map handed to scripts.
type ParameterVisitor interface {
	Uint8(name string, v *uint8)
	Uint16(name string, v *uint16)
	Uint32(name string, v *uint32)
	Int32(name string, v *int32)
	Bool(name string, v *bool)
	Coords(name string, v *park.CoordsXYZD)
}

func visitUint8[T ~uint8](v ParameterVisitor, name string, p *T) {
	x := uint8(*p)
	v.Uint8(name, &x)
	*p = T(x)
}

func visitUint16[T ~uint16](v ParameterVisitor, name string, p *T) {
	x := uint16(*p)
	v.Uint16(name, &x)
	*p = T(x)
}

func visitUint32[T ~uint32](v ParameterVisitor, name string, p *T) {
	x := uint32(*p)
	v.Uint32(name, &x)
	*p = T(x)
}

// Mode is the direction a Stream runs in.
type Mode uint8

const (
	ModeWriting Mode = iota
	ModeReading
)

// Stream is a bidirectional ParameterVisitor over the protobuf wire format.
// Every visited value becomes one record whose field number is its visit
// ordinal, so a reader detects any divergence in field order.
//
// A reading Stream records the first error and zeroes every value visited
// after it; callers check Err once after the whole visit.
type Stream struct {
	mode Mode
	buf  []byte
	next protowire.Number
	err  error
}

// NewWriter returns an empty Stream in writing mode.
func NewWriter() *Stream {
	return &Stream{mode: ModeWriting, next: 1}
}

// NewReader returns a Stream that decodes data.
func NewReader(data []byte) *Stream {
	return &Stream{mode: ModeReading, buf: data, next: 1}
}

// Mode returns the stream direction.
func (s *Stream) Mode() Mode { return s.mode }

// Bytes returns the encoded records of a writing Stream, or the unread
// remainder of a reading one.
func (s *Stream) Bytes() []byte { return s.buf }

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int {
	if s.mode == ModeWriting {
		return 0
	}
	return len(s.buf)
}

// Err returns the first decoding error, if any.
func (s *Stream) Err() error { return s.err }

func (s *Stream) ordinal() protowire.Number {
	n := s.next
	s.next++
	return n
}

// expect consumes the tag of the next record and checks it is field num of
// wire type typ.
func (s *Stream) expect(name string, num protowire.Number, typ protowire.Type) bool {
	if s.err != nil {
		return false
	}
	got, gotTyp, n := protowire.ConsumeTag(s.buf)
	if n < 0 {
		s.err = oops.Code(CodeTruncated).With("field", name).Wrap(protowire.ParseError(n))
		return false
	}
	if got != num || gotTyp != typ {
		s.err = oops.Code(CodeFieldOrder).
			With("field", name).
			With("expected", int32(num)).
			With("got", int32(got)).
			Errorf("field %q: expected record %d type %d, got record %d type %d", name, num, typ, got, gotTyp)
		return false
	}
	s.buf = s.buf[n:]
	return true
}

func (s *Stream) varint(name string, v uint64, limit uint64) uint64 {
	num := s.ordinal()
	if s.mode == ModeWriting {
		s.buf = protowire.AppendTag(s.buf, num, protowire.VarintType)
		s.buf = protowire.AppendVarint(s.buf, v)
		return v
	}
	if !s.expect(name, num, protowire.VarintType) {
		return 0
	}
	x, n := protowire.ConsumeVarint(s.buf)
	if n < 0 {
		s.err = oops.Code(CodeTruncated).With("field", name).Wrap(protowire.ParseError(n))
		return 0
	}
	s.buf = s.buf[n:]
	if x > limit {
		s.err = oops.Code(CodeOverflow).With("field", name).With("value", x).Errorf("field %q: value %d exceeds %d", name, x, limit)
		return 0
	}
	return x
}

// Uint8 visits an 8-bit field.
func (s *Stream) Uint8(name string, v *uint8) {
	*v = uint8(s.varint(name, uint64(*v), math.MaxUint8))
}

// Uint16 visits a 16-bit field.
func (s *Stream) Uint16(name string, v *uint16) {
	*v = uint16(s.varint(name, uint64(*v), math.MaxUint16))
}

// Uint32 visits a 32-bit field.
func (s *Stream) Uint32(name string, v *uint32) {
	*v = uint32(s.varint(name, uint64(*v), math.MaxUint32))
}

// Int32 visits a signed 32-bit field using zig-zag encoding.
func (s *Stream) Int32(name string, v *int32) {
	*v = int32(protowire.DecodeZigZag(s.varint(name, protowire.EncodeZigZag(int64(*v)), math.MaxUint32)))
}

// Bool visits a boolean field.
func (s *Stream) Bool(name string, v *bool) {
	*v = protowire.DecodeBool(s.varint(name, protowire.EncodeBool(*v), 1))
}

// Coords visits a location as one length-delimited record holding x, y, z
// and direction.
func (s *Stream) Coords(name string, v *park.CoordsXYZD) {
	num := s.ordinal()
	if s.mode == ModeWriting {
		var inner []byte
		inner = protowire.AppendVarint(inner, protowire.EncodeZigZag(int64(v.X)))
		inner = protowire.AppendVarint(inner, protowire.EncodeZigZag(int64(v.Y)))
		inner = protowire.AppendVarint(inner, protowire.EncodeZigZag(int64(v.Z)))
		inner = protowire.AppendVarint(inner, uint64(v.Direction))
		s.buf = protowire.AppendTag(s.buf, num, protowire.BytesType)
		s.buf = protowire.AppendBytes(s.buf, inner)
		return
	}
	*v = park.CoordsXYZD{}
	if !s.expect(name, num, protowire.BytesType) {
		return
	}
	inner, n := protowire.ConsumeBytes(s.buf)
	if n < 0 {
		s.err = oops.Code(CodeTruncated).With("field", name).Wrap(protowire.ParseError(n))
		return
	}
	s.buf = s.buf[n:]

	var parts [4]uint64
	for i := range parts {
		x, m := protowire.ConsumeVarint(inner)
		if m < 0 {
			s.err = oops.Code(CodeTruncated).With("field", name).With("component", i).Wrap(protowire.ParseError(m))
			return
		}
		parts[i] = x
		inner = inner[m:]
	}
	if len(inner) > 0 {
		s.err = oops.Code(CodeTrailingData).With("field", name).Errorf("field %q: %d stray bytes in coordinates", name, len(inner))
		return
	}
	if parts[3] > math.MaxUint8 {
		s.err = oops.Code(CodeOverflow).With("field", name).Errorf("field %q: direction %d out of range", name, parts[3])
		return
	}
	var xyz [3]int32
	for i, axis := range [3]string{"x", "y", "z"} {
		c := protowire.DecodeZigZag(parts[i])
		if c < math.MinInt32 || c > math.MaxInt32 {
			s.err = oops.Code(CodeOverflow).With("field", name).With("component", i).Errorf("field %q: %s %d out of range", name, axis, c)
			return
		}
		xyz[i] = int32(c)
	}
	*v = park.CoordsXYZD{
		X:         xyz[0],
		Y:         xyz[1],
		Z:         xyz[2],
		Direction: park.Direction(parts[3]),
	}
}
