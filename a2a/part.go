// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Part is one segment of message or artifact content. It is a closed
// union discriminated by the wire "kind" field: text, file or data.
// Kinds this module does not know are preserved as an OpaquePart so
// they survive a decode/encode round trip.
type Part interface {
	// PartKind returns the wire discriminator of the part.
	PartKind() string
}

var (
	_ Part = (*TextPart)(nil)
	_ Part = (*FilePart)(nil)
	_ Part = (*DataPart)(nil)
	_ Part = (*OpaquePart)(nil)
)

// TextPart carries plain text.
type TextPart struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// NewTextPart returns a TextPart holding text.
func NewTextPart(text string) *TextPart {
	return &TextPart{Kind: KindText, Text: text}
}

// PartKind implements Part.
func (p *TextPart) PartKind() string { return KindText }

// MarshalJSON implements json.Marshaler. It forces the discriminator so
// hand-built literals encode correctly.
func (p *TextPart) MarshalJSON() ([]byte, error) {
	type plain TextPart
	out := plain(*p)
	out.Kind = KindText
	return json.Marshal(&out)
}

// FileContent is the payload of a FilePart. Exactly one of Bytes
// (base64) or URI should be set.
type FileContent struct {
	Name     string `json:"name,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
	Bytes    string `json:"bytes,omitzero"`
	URI      string `json:"uri,omitzero"`
}

// FilePart carries a file, inline or by reference.
type FilePart struct {
	Kind     string         `json:"kind"`
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// PartKind implements Part.
func (p *FilePart) PartKind() string { return KindFile }

// MarshalJSON implements json.Marshaler.
func (p *FilePart) MarshalJSON() ([]byte, error) {
	type plain FilePart
	out := plain(*p)
	out.Kind = KindFile
	return json.Marshal(&out)
}

// DataPart carries structured data.
type DataPart struct {
	Kind     string         `json:"kind"`
	Data     map[string]any `json:"data"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// PartKind implements Part.
func (p *DataPart) PartKind() string { return KindData }

// MarshalJSON implements json.Marshaler.
func (p *DataPart) MarshalJSON() ([]byte, error) {
	type plain DataPart
	out := plain(*p)
	out.Kind = KindData
	return json.Marshal(&out)
}

// OpaquePart preserves a part whose kind this module does not model.
// The raw JSON is kept verbatim.
type OpaquePart struct {
	Kind string
	Raw  jsontext.Value
}

// PartKind implements Part.
func (p *OpaquePart) PartKind() string { return p.Kind }

// MarshalJSON implements json.Marshaler.
func (p *OpaquePart) MarshalJSON() ([]byte, error) {
	return p.Raw, nil
}

// DecodePart classifies raw JSON into the Part union by its "kind"
// field. A missing discriminator is an error; an unrecognized one
// yields an OpaquePart.
func DecodePart(raw []byte) (Part, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode part: %w", err)
	}

	switch probe.Kind {
	case KindText:
		p := new(TextPart)
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("decode text part: %w", err)
		}
		return p, nil

	case KindFile:
		p := new(FilePart)
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("decode file part: %w", err)
		}
		return p, nil

	case KindData:
		p := new(DataPart)
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("decode data part: %w", err)
		}
		return p, nil

	case "":
		return nil, fmt.Errorf("decode part: missing %q discriminator", "kind")

	default:
		return &OpaquePart{
			Kind: probe.Kind,
			Raw:  jsontext.Value(append([]byte(nil), raw...)),
		}, nil
	}
}

// Parts is a slice of the Part union with JSON decoding that dispatches
// each element through DecodePart.
type Parts []Part

// UnmarshalJSON implements json.Unmarshaler.
func (ps *Parts) UnmarshalJSON(data []byte) error {
	var raws []jsontext.Value
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode parts: %w", err)
	}

	out := make(Parts, 0, len(raws))
	for i, raw := range raws {
		part, err := DecodePart(raw)
		if err != nil {
			return fmt.Errorf("parts[%d]: %w", i, err)
		}
		out = append(out, part)
	}
	*ps = out

	return nil
}
