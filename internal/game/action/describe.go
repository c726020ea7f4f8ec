package action

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/cory-johannsen/parksim/internal/game/park"
)

// Field describes one visited parameter.
type Field struct {
	Name string
	Kind string
}

type fieldVisitor struct {
	fields []Field
}

func (v *fieldVisitor) add(name, kind string) {
	v.fields = append(v.fields, Field{Name: name, Kind: kind})
}

func (v *fieldVisitor) Uint8(name string, _ *uint8)            { v.add(name, "u8") }
func (v *fieldVisitor) Uint16(name string, _ *uint16)          { v.add(name, "u16") }
func (v *fieldVisitor) Uint32(name string, _ *uint32)          { v.add(name, "u32") }
func (v *fieldVisitor) Int32(name string, _ *int32)            { v.add(name, "i32") }
func (v *fieldVisitor) Bool(name string, _ *bool)              { v.add(name, "bool") }
func (v *fieldVisitor) Coords(name string, _ *park.CoordsXYZD) { v.add(name, "coords") }

// Fields returns the parameters a exposes, in visit order.
func Fields(a Action) []Field {
	var v fieldVisitor
	a.AcceptParameters(&v)
	return v.fields
}

// Signature is the structural fingerprint of an action type's parameter
// list. Peers compare signatures to detect diverging field layouts before
// exchanging encoded actions.
type Signature [blake2b.Size256]byte

// String returns the signature as lowercase hex.
func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// SignatureOf hashes the action name and its ordered name:kind field list.
//
// Postcondition: Two actions of the same type always share a signature,
// whatever their parameter values.
func SignatureOf(a Action) Signature {
	var b strings.Builder
	b.WriteString(a.Name())
	for _, f := range Fields(a) {
		b.WriteByte('\n')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Kind)
	}
	return blake2b.Sum256([]byte(b.String()))
}

type paramVisitor map[string]int64

func (m paramVisitor) Uint8(name string, v *uint8)   { m[name] = int64(*v) }
func (m paramVisitor) Uint16(name string, v *uint16) { m[name] = int64(*v) }
func (m paramVisitor) Uint32(name string, v *uint32) { m[name] = int64(*v) }
func (m paramVisitor) Int32(name string, v *int32)   { m[name] = int64(*v) }

func (m paramVisitor) Bool(name string, v *bool) {
	if *v {
		m[name] = 1
	} else {
		m[name] = 0
	}
}

func (m paramVisitor) Coords(name string, v *park.CoordsXYZD) {
	m[name+".x"] = int64(v.X)
	m[name+".y"] = int64(v.Y)
	m[name+".z"] = int64(v.Z)
	m[name+".direction"] = int64(v.Direction)
}

// Parameters returns a flat name to value map of a's parameters. Locations
// expand to name.x, name.y, name.z and name.direction.
func Parameters(a Action) map[string]int64 {
	m := make(paramVisitor)
	a.AcceptParameters(m)
	return m
}
