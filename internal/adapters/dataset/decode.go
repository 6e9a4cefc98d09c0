// Package dataset reads profile score files from disk.
package dataset

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/aware-eval/internal/domain/model"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

// Decode parses data into an order-preserving Document. The top-level value
// must be an object and must not be followed by anything but whitespace.
func Decode(data []byte) (*model.Document, error) {
	iter := jsoniter.ParseBytes(api, data)

	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrParse, iter.Error)
		}
		if next == jsoniter.InvalidValue {
			return nil, fmt.Errorf("%w: expecting value", ErrParse)
		}
		return nil, fmt.Errorf("%w: top-level value must be an object, got %s", ErrParse, kindOf(next))
	}

	doc := &model.Document{}
	positions := make(map[string]int)
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		entry := model.Entry{Key: key, Kind: kindOf(it.WhatIsNext())}
		if entry.Kind == model.KindObject {
			entry.Fields = readFields(it)
		} else {
			it.Skip()
		}
		if it.Error != nil {
			return false
		}
		if i, seen := positions[key]; seen {
			doc.Entries[i] = entry
			return true
		}
		positions[key] = len(doc.Entries)
		doc.Entries = append(doc.Entries, entry)
		return true
	})
	if err := iter.Error; err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	// Anything but whitespace after the object is rejected. At end of input
	// the iterator reports io.EOF; leftover bytes leave Error untouched.
	iter.WhatIsNext()
	if !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("%w: extra data after top-level object", ErrParse)
	}
	return doc, nil
}

// readFields reads one record object. Duplicate field names collapse the same
// way duplicate top-level keys do.
func readFields(iter *jsoniter.Iterator) []model.Field {
	var fields []model.Field
	positions := make(map[string]int)
	iter.ReadObjectCB(func(it *jsoniter.Iterator, name string) bool {
		f := model.Field{Name: name, Kind: kindOf(it.WhatIsNext())}
		if f.Kind == model.KindNumber {
			f.Number = it.ReadFloat64()
		} else {
			it.Skip()
		}
		if it.Error != nil {
			return false
		}
		if i, seen := positions[name]; seen {
			fields[i] = f
			return true
		}
		positions[name] = len(fields)
		fields = append(fields, f)
		return true
	})
	return fields
}

func kindOf(t jsoniter.ValueType) model.Kind {
	switch t {
	case jsoniter.NumberValue:
		return model.KindNumber
	case jsoniter.StringValue:
		return model.KindString
	case jsoniter.BoolValue:
		return model.KindBool
	case jsoniter.NilValue:
		return model.KindNull
	case jsoniter.ObjectValue:
		return model.KindObject
	case jsoniter.ArrayValue:
		return model.KindArray
	default:
		return model.KindInvalid
	}
}
