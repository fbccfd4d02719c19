package jsonutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Field is a top-level key written by MergeFields.
type Field struct {
	Name  string
	Value any
}

// IsObject reports whether data holds exactly one JSON object and nothing
// after it.
func (c *Codec) IsObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}

	iter := c.api.BorrowIterator(trimmed)
	defer c.api.ReturnIterator(iter)

	iter.Skip()

	if iter.Error != nil {
		return false
	}

	// Only io.EOF may follow the object.
	return iter.WhatIsNext() == jsoniter.InvalidValue && errors.Is(iter.Error, io.EOF)
}

// MergeFields writes fields into the top level of the JSON object in body.
// A body that is not a JSON object is treated as {}. Keys already present
// are overwritten in place, the rest are appended in argument order, and all
// other members keep their position and raw encoding. A key repeated in body
// is kept once, at its first position, with its last value.
func (c *Codec) MergeFields(body []byte, fields ...Field) ([]byte, error) {
	members, err := c.readMembers(body)
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(members)+len(fields))
	for i, m := range members {
		position[m.key] = i
	}

	for _, field := range fields {
		raw, err := c.api.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}

		if i, ok := position[field.Name]; ok {
			members[i].raw = raw

			continue
		}

		position[field.Name] = len(members)
		members = append(members, member{key: field.Name, raw: raw})
	}

	stream := c.api.BorrowStream(nil)
	defer c.api.ReturnStream(stream)

	stream.WriteObjectStart()

	for i, m := range members {
		if i > 0 {
			stream.WriteMore()
		}

		stream.WriteObjectField(m.key)
		_, _ = stream.Write(m.raw)
	}

	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, stream.Error)
	}

	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())

	return out, nil
}

type member struct {
	key string
	raw []byte
}

// readMembers returns the top-level members of body in order, collapsing
// repeated keys. Anything but a JSON object yields no members.
func (c *Codec) readMembers(body []byte) ([]member, error) {
	if !c.IsObject(body) {
		return nil, nil
	}

	var members []member

	seen := make(map[string]int)

	iter := c.api.BorrowIterator(bytes.TrimSpace(body))
	defer c.api.ReturnIterator(iter)

	iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
		raw := append([]byte(nil), iter.SkipAndReturnBytes()...)

		if i, ok := seen[key]; ok {
			members[i].raw = raw

			return true
		}

		seen[key] = len(members)
		members = append(members, member{key: key, raw: raw})

		return true
	})

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrParse, iter.Error)
	}

	return members, nil
}
