package replication

import (
	"github.com/samber/oops"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// Result wire fields.
const (
	fieldStatus      protowire.Number = 1
	fieldCost        protowire.Number = 2
	fieldExpenditure protowire.Number = 3
	fieldTitle       protowire.Number = 4
	fieldMessage     protowire.Number = 5
	fieldPosition    protowire.Number = 6
)

// EncodeResult serialises res for the Submit response.
func EncodeResult(res *action.Result) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldStatus, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(res.Status))
	b = protowire.AppendTag(b, fieldCost, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(res.Cost)))
	b = protowire.AppendTag(b, fieldExpenditure, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(res.Expenditure))
	b = protowire.AppendTag(b, fieldTitle, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(res.ErrorTitle))
	b = protowire.AppendTag(b, fieldMessage, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(res.ErrorMessage))
	if p := res.Position; p != nil {
		var pos []byte
		pos = protowire.AppendVarint(pos, protowire.EncodeZigZag(int64(p.X)))
		pos = protowire.AppendVarint(pos, protowire.EncodeZigZag(int64(p.Y)))
		pos = protowire.AppendVarint(pos, protowire.EncodeZigZag(int64(p.Z)))
		b = protowire.AppendTag(b, fieldPosition, protowire.BytesType)
		b = protowire.AppendBytes(b, pos)
	}
	return b
}

// DecodeResult parses a Submit response body. Unknown fields are skipped.
func DecodeResult(data []byte) (*action.Result, error) {
	res := &action.Result{Cost: money.Undefined}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, oops.Code(action.CodeTruncated).Wrap(protowire.ParseError(n))
		}
		data = data[n:]
		if num == fieldPosition && typ == protowire.BytesType {
			pos, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, oops.Code(action.CodeTruncated).Wrap(protowire.ParseError(m))
			}
			c, err := decodePosition(pos)
			if err != nil {
				return nil, err
			}
			res.Position = c
			data = data[m:]
			continue
		}
		if typ != protowire.VarintType {
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return nil, oops.Code(action.CodeTruncated).Wrap(protowire.ParseError(m))
			}
			data = data[m:]
			continue
		}
		v, m := protowire.ConsumeVarint(data)
		if m < 0 {
			return nil, oops.Code(action.CodeTruncated).Wrap(protowire.ParseError(m))
		}
		data = data[m:]
		switch num {
		case fieldStatus:
			res.Status = action.Status(v)
		case fieldCost:
			res.Cost = money.Money(protowire.DecodeZigZag(v))
		case fieldExpenditure:
			res.Expenditure = money.ExpenditureType(v)
		case fieldTitle:
			res.ErrorTitle = action.StringID(v)
		case fieldMessage:
			res.ErrorMessage = action.StringID(v)
		}
	}
	return res, nil
}

func decodePosition(b []byte) (*park.CoordsXYZ, error) {
	var xyz [3]int32
	for i := range xyz {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, oops.Code(action.CodeTruncated).With("field", "position").Wrap(protowire.ParseError(n))
		}
		xyz[i] = int32(protowire.DecodeZigZag(v))
		b = b[n:]
	}
	return &park.CoordsXYZ{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
