package compat

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kstenerud/go-bonjson"
)

// ToStructValue converts v into a structpb.Value: structpb is already a
// tagged JSON-shaped union (null/bool/number/string/list/struct), the
// closest existing protobuf type to a Value tree, so the conversion is
// direct rather than going through a generic any-tree round trip.
func ToStructValue(v bonjson.Value) (*structpb.Value, error) {
	switch v.Kind() {
	case bonjson.KindNull:
		return structpb.NewNullValue(), nil
	case bonjson.KindBool:
		return structpb.NewBoolValue(v.AsBool()), nil
	case bonjson.KindInt64:
		return structpb.NewNumberValue(float64(v.AsInt())), nil
	case bonjson.KindUint64:
		return structpb.NewNumberValue(float64(v.AsUint())), nil
	case bonjson.KindFloat64:
		return structpb.NewNumberValue(v.AsFloat()), nil
	case bonjson.KindBigNum:
		return structpb.NewStringValue(BigNumToString(v.AsBigNum())), nil
	case bonjson.KindString:
		return structpb.NewStringValue(v.AsString()), nil
	case bonjson.KindArray:
		elems := v.AsArray()
		vals := make([]*structpb.Value, len(elems))
		for i, e := range elems {
			sv, err := ToStructValue(e)
			if err != nil {
				return nil, err
			}
			vals[i] = sv
		}
		return structpb.NewListValue(&structpb.ListValue{Values: vals}), nil
	case bonjson.KindObject:
		pairs := v.AsObject()
		fields := make(map[string]*structpb.Value, len(pairs))
		for _, p := range pairs {
			sv, err := ToStructValue(p.Value)
			if err != nil {
				return nil, err
			}
			fields[p.Key] = sv
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	default:
		return nil, fmt.Errorf("compat: unrecognized Value kind %v", v.Kind())
	}
}

// FromStructValue converts a structpb.Value into a Value tree. Numbers
// always come back as KindFloat64: structpb has no integer distinction.
func FromStructValue(sv *structpb.Value) (bonjson.Value, error) {
	switch sv.GetKind().(type) {
	case *structpb.Value_NullValue:
		return bonjson.Null(), nil
	case *structpb.Value_BoolValue:
		return bonjson.Bool(sv.GetBoolValue()), nil
	case *structpb.Value_NumberValue:
		return bonjson.Float(sv.GetNumberValue()), nil
	case *structpb.Value_StringValue:
		return bonjson.String(sv.GetStringValue()), nil
	case *structpb.Value_ListValue:
		elems := sv.GetListValue().GetValues()
		out := make([]bonjson.Value, len(elems))
		for i, e := range elems {
			v, err := FromStructValue(e)
			if err != nil {
				return bonjson.Value{}, err
			}
			out[i] = v
		}
		return bonjson.Array(out...), nil
	case *structpb.Value_StructValue:
		fields := sv.GetStructValue().GetFields()
		pairs := make([]bonjson.Pair, 0, len(fields))
		for key, fv := range fields {
			v, err := FromStructValue(fv)
			if err != nil {
				return bonjson.Value{}, err
			}
			pairs = append(pairs, bonjson.Pair{Key: key, Value: v})
		}
		return bonjson.Object(pairs...), nil
	default:
		return bonjson.Value{}, fmt.Errorf("compat: unrecognized structpb value kind")
	}
}
