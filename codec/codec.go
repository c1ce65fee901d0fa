// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package codec encodes envelopes for the routes that cross process boundaries.
//
// An envelope is written as a protobuf Struct. Arguments are mapped to protobuf
// values: numbers decode as float64, byte slices as base64 strings, and any value
// protobuf cannot hold directly goes through its JSON form, which is how a Proxy
// travels as {"aid": "..."}.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tochemey/pulse/actor"
)

const (
	fieldSender  = "sender"
	fieldName    = "name"
	fieldArgs    = "args"
	fieldKwargs  = "kwargs"
	fieldRID     = "rid"
	fieldAck     = "ack"
	compressMark = "\x28\xb5\x2f\xfd"
)

// Codec encodes and decodes envelopes
type Codec interface {
	Encode(envelope *actor.Envelope) ([]byte, error)
	Decode(data []byte) (*actor.Envelope, error)
}

// ProtoCodec implements Codec with protobuf Struct values
type ProtoCodec struct {
	compress bool
}

// enforce compilation error
var _ Codec = (*ProtoCodec)(nil)

// Option configures the ProtoCodec
type Option func(*ProtoCodec)

// WithCompression compresses encoded envelopes with zstd
func WithCompression() Option {
	return func(x *ProtoCodec) {
		x.compress = true
	}
}

// New creates a ProtoCodec. Decoding accepts both compressed and plain payloads.
func New(opts ...Option) *ProtoCodec {
	x := &ProtoCodec{}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Encode encodes the envelope
func (x *ProtoCodec) Encode(envelope *actor.Envelope) ([]byte, error) {
	if envelope == nil {
		return nil, fmt.Errorf("codec: nil envelope")
	}

	args := make([]*structpb.Value, 0, len(envelope.Args))
	for i, arg := range envelope.Args {
		value, err := toValue(arg)
		if err != nil {
			return nil, fmt.Errorf("codec: argument %d: %w", i, err)
		}
		args = append(args, value)
	}

	kwargs := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(envelope.Kwargs))}
	for key, arg := range envelope.Kwargs {
		value, err := toValue(arg)
		if err != nil {
			return nil, fmt.Errorf("codec: keyword argument %q: %w", key, err)
		}
		kwargs.Fields[key] = value
	}

	message := &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldSender: structpb.NewStringValue(envelope.SenderID),
			fieldName:   structpb.NewStringValue(envelope.Name),
			fieldArgs:   structpb.NewListValue(&structpb.ListValue{Values: args}),
			fieldKwargs: structpb.NewStructValue(kwargs),
			fieldRID:    structpb.NewStringValue(envelope.CorrelationID),
			fieldAck:    structpb.NewBoolValue(envelope.AckRequired),
		},
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(message)
	if err != nil {
		return nil, err
	}

	if x.compress {
		return compress(data)
	}
	return data, nil
}

// Decode decodes the envelope
func (x *ProtoCodec) Decode(data []byte) (*actor.Envelope, error) {
	if bytes.HasPrefix(data, []byte(compressMark)) {
		var err error
		if data, err = decompress(data); err != nil {
			return nil, err
		}
	}

	message := new(structpb.Struct)
	if err := proto.Unmarshal(data, message); err != nil {
		return nil, err
	}

	fields := message.GetFields()
	envelope := &actor.Envelope{
		SenderID:      fields[fieldSender].GetStringValue(),
		Name:          fields[fieldName].GetStringValue(),
		CorrelationID: fields[fieldRID].GetStringValue(),
		AckRequired:   fields[fieldAck].GetBoolValue(),
	}

	if list := fields[fieldArgs].GetListValue(); len(list.GetValues()) > 0 {
		envelope.Args = list.AsSlice()
	}

	if kwargs := fields[fieldKwargs].GetStructValue(); len(kwargs.GetFields()) > 0 {
		envelope.Kwargs = actor.Kwargs(kwargs.AsMap())
	}

	if err := envelope.Validate(); err != nil {
		return nil, err
	}
	return envelope, nil
}

// toValue maps an argument to a protobuf value, falling back to its JSON form
func toValue(v any) (*structpb.Value, error) {
	if kwargs, ok := v.(actor.Kwargs); ok {
		v = map[string]any(kwargs)
	}

	if value, err := structpb.NewValue(v); err == nil {
		return value, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return structpb.NewValue(generic)
}
