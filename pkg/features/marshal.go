package features

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// field numbers from the tf.train.Example schema.
const (
	fieldExampleFeatures = 1 // Example.features

	fieldFeaturesEntry = 1 // Features.feature (map entry)
	fieldMapKey        = 1
	fieldMapValue      = 2

	fieldKindBytesList = 1 // Feature.bytes_list
	fieldKindFloatList = 2 // Feature.float_list
	fieldKindInt64List = 3 // Feature.int64_list

	fieldListValue = 1 // {Bytes,Float,Int64}List.value
)

const (
	wireVarint = 0
	wireI64    = 1
	wireLen    = 2
	wireI32    = 5
)

// Marshal serializes an Example into the tf.train.Example wire format.
//
// Feature names are encoded in sorted order, so the same Example always
// marshals to the same bytes. A feature with an empty value list is
// rejected. Encoding is hand-rolled here because the schema is tiny and
// frozen; it keeps the tool free of a protobuf toolchain.
func Marshal(ex Example) ([]byte, error) {
	names := make([]string, 0, len(ex))
	for name := range ex {
		names = append(names, name)
	}
	sort.Strings(names)

	var featuresBuf []byte
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("empty feature name")
		}
		kind, err := marshalFeature(ex[name])
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", name, err)
		}

		var entry []byte
		entry = appendBytesField(entry, fieldMapKey, []byte(name))
		entry = appendBytesField(entry, fieldMapValue, kind)

		featuresBuf = appendBytesField(featuresBuf, fieldFeaturesEntry, entry)
	}

	return appendBytesField(nil, fieldExampleFeatures, featuresBuf), nil
}

func marshalFeature(f Feature) ([]byte, error) {
	switch v := f.(type) {
	case Ints:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty value list")
		}
		var packed []byte
		for _, i := range v {
			packed = binary.AppendUvarint(packed, uint64(i))
		}
		list := appendBytesField(nil, fieldListValue, packed)
		return appendBytesField(nil, fieldKindInt64List, list), nil

	case Floats:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty value list")
		}
		packed := make([]byte, 0, 4*len(v))
		for _, f32 := range v {
			packed = binary.LittleEndian.AppendUint32(packed, math.Float32bits(f32))
		}
		list := appendBytesField(nil, fieldListValue, packed)
		return appendBytesField(nil, fieldKindFloatList, list), nil

	case Bytes:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty value list")
		}
		var list []byte
		for _, b := range v {
			list = appendBytesField(list, fieldListValue, b)
		}
		return appendBytesField(nil, fieldKindBytesList, list), nil

	case nil:
		return nil, fmt.Errorf("nil value list")

	default:
		return nil, fmt.Errorf("unknown feature kind %T", f)
	}
}

func appendTag(buf []byte, field int, wire int) []byte {
	return binary.AppendUvarint(buf, uint64(field)<<3|uint64(wire))
}

func appendBytesField(buf []byte, field int, payload []byte) []byte {
	buf = appendTag(buf, field, wireLen)
	buf = binary.AppendUvarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

// Unmarshal parses the tf.train.Example wire format back into an Example.
//
// It accepts both packed and unpacked encodings for numeric value lists.
func Unmarshal(raw []byte) (Example, error) {
	ex := Example{}

	err := eachField(raw, func(field int, wire int, payload []byte) error {
		if field != fieldExampleFeatures || wire != wireLen {
			return nil // unknown field, skip
		}
		return eachField(payload, func(field int, wire int, entry []byte) error {
			if field != fieldFeaturesEntry || wire != wireLen {
				return nil
			}
			name, feature, err := unmarshalEntry(entry)
			if err != nil {
				return err
			}
			ex[name] = feature
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ex, nil
}

func unmarshalEntry(entry []byte) (string, Feature, error) {
	var name string
	var feature Feature

	err := eachField(entry, func(field int, wire int, payload []byte) error {
		switch {
		case field == fieldMapKey && wire == wireLen:
			name = string(payload)
		case field == fieldMapValue && wire == wireLen:
			f, err := unmarshalFeature(payload)
			if err != nil {
				return err
			}
			feature = f
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if feature == nil {
		return "", nil, fmt.Errorf("feature %s: no value list", name)
	}
	return name, feature, nil
}

func unmarshalFeature(raw []byte) (Feature, error) {
	var feature Feature

	err := eachField(raw, func(field int, wire int, payload []byte) error {
		if wire != wireLen {
			return fmt.Errorf("unexpected wire type %d for feature kind", wire)
		}
		switch field {
		case fieldKindInt64List:
			ints := Ints{}
			err := eachScalar(payload, wireVarint, func(v uint64) {
				ints = append(ints, int64(v))
			})
			if err != nil {
				return err
			}
			feature = ints

		case fieldKindFloatList:
			floats := Floats{}
			err := eachScalar(payload, wireI32, func(v uint64) {
				floats = append(floats, math.Float32frombits(uint32(v)))
			})
			if err != nil {
				return err
			}
			feature = floats

		case fieldKindBytesList:
			bytes := Bytes{}
			err := eachField(payload, func(field int, wire int, b []byte) error {
				if field != fieldListValue || wire != wireLen {
					return nil
				}
				val := make([]byte, len(b))
				copy(val, b)
				bytes = append(bytes, val)
				return nil
			})
			if err != nil {
				return err
			}
			feature = bytes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("feature kind is not set")
	}
	return feature, nil
}

// eachScalar reads the `value` fields of a numeric list message,
// whether packed (one length-delimited field) or not.
func eachScalar(raw []byte, wire int, emit func(uint64)) error {
	return eachField(raw, func(field int, w int, payload []byte) error {
		if field != fieldListValue {
			return nil
		}
		switch w {
		case wireLen: // packed
			rest := payload
			for len(rest) > 0 {
				v, n, err := readScalar(rest, wire)
				if err != nil {
					return err
				}
				emit(v)
				rest = rest[n:]
			}
			return nil
		case wire: // unpacked
			v, _, err := readScalar(payload, wire)
			if err != nil {
				return err
			}
			emit(v)
			return nil
		default:
			return fmt.Errorf("unexpected wire type %d in value list", w)
		}
	})
}

func readScalar(raw []byte, wire int) (uint64, int, error) {
	switch wire {
	case wireVarint:
		v, n := binary.Uvarint(raw)
		if n <= 0 {
			return 0, 0, fmt.Errorf("truncated varint")
		}
		return v, n, nil
	case wireI32:
		if len(raw) < 4 {
			return 0, 0, fmt.Errorf("truncated fixed32")
		}
		return uint64(binary.LittleEndian.Uint32(raw)), 4, nil
	case wireI64:
		if len(raw) < 8 {
			return 0, 0, fmt.Errorf("truncated fixed64")
		}
		return binary.LittleEndian.Uint64(raw), 8, nil
	default:
		return 0, 0, fmt.Errorf("unexpected wire type %d", wire)
	}
}

// eachField scans one message, calling visit for each field.
//
// For length-delimited fields, payload is the field content.
// For scalar fields, payload is the raw bytes the scalar was read from.
func eachField(raw []byte, visit func(field int, wire int, payload []byte) error) error {
	rest := raw
	for len(rest) > 0 {
		tag, n := binary.Uvarint(rest)
		if n <= 0 {
			return fmt.Errorf("truncated tag")
		}
		rest = rest[n:]

		field := int(tag >> 3)
		wire := int(tag & 0x7)
		if field <= 0 {
			return fmt.Errorf("invalid field number %d", field)
		}

		switch wire {
		case wireLen:
			size, n := binary.Uvarint(rest)
			if n <= 0 || uint64(len(rest)-n) < size {
				return fmt.Errorf("truncated length-delimited field %d", field)
			}
			rest = rest[n:]
			if err := visit(field, wire, rest[:size]); err != nil {
				return err
			}
			rest = rest[size:]

		case wireVarint, wireI32, wireI64:
			_, size, err := readScalar(rest, wire)
			if err != nil {
				return err
			}
			if err := visit(field, wire, rest[:size]); err != nil {
				return err
			}
			rest = rest[size:]

		default:
			return fmt.Errorf("unsupported wire type %d in field %d", wire, field)
		}
	}
	return nil
}
