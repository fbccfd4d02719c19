package jsonutil

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf((*time.Time)(nil))
)

// dateExtension encodes time.Time as epoch milliseconds. Decoding accepts
// epoch milliseconds first and the codec layouts second. Anything else
// decodes to the zero time (or a nil *time.Time) without an error.
type dateExtension struct {
	jsoniter.DummyExtension

	codec *Codec
}

func (e *dateExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder { //nolint:ireturn
	switch typ.Type1() {
	case timeType:
		return &dateDecoder{codec: e.codec}
	case timePtrType:
		return &datePtrDecoder{codec: e.codec}
	default:
		return nil
	}
}

func (e *dateExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder { //nolint:ireturn
	if typ.Type1() == timeType {
		return &dateEncoder{}
	}

	return nil
}

type dateEncoder struct{}

func (e *dateEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*time.Time)(ptr).IsZero()
}

func (e *dateEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	date := (*time.Time)(ptr)
	if date.IsZero() {
		stream.WriteNil()

		return
	}

	stream.WriteInt64(date.UnixMilli())
}

type dateDecoder struct {
	codec *Codec
}

func (d *dateDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	date, _ := d.codec.readDate(iter)
	*(*time.Time)(ptr) = date
}

type datePtrDecoder struct {
	codec *Codec
}

func (d *datePtrDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	date, ok := d.codec.readDate(iter)
	if !ok {
		*(**time.Time)(ptr) = nil

		return
	}

	*(**time.Time)(ptr) = &date
}

func (c *Codec) readDate(iter *jsoniter.Iterator) (time.Time, bool) {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()

		return time.Time{}, false
	case jsoniter.NumberValue:
		return parseEpochNumber(string(iter.ReadNumber()))
	case jsoniter.StringValue:
		return c.ParseDate(iter.ReadString())
	case jsoniter.InvalidValue, jsoniter.BoolValue, jsoniter.ArrayValue, jsoniter.ObjectValue:
		iter.Skip()

		return time.Time{}, false
	default:
		iter.Skip()

		return time.Time{}, false
	}
}

// ParseDate applies the string half of the date rule: an integer number of
// epoch milliseconds, then each configured layout.
func (c *Codec) ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)

	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis), true
	}

	for _, layout := range c.layouts {
		if date, err := time.ParseInLocation(layout, value, c.location); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

func parseEpochNumber(number string) (time.Time, bool) {
	if millis, err := strconv.ParseInt(number, 10, 64); err == nil {
		return time.UnixMilli(millis), true
	}

	millis, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(millis, 0) || math.IsNaN(millis) {
		return time.Time{}, false
	}

	return time.UnixMilli(int64(millis)), true
}
