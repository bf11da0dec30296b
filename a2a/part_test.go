// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

func TestDecodePart(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want Part
	}{
		"text": {
			raw:  `{"kind":"text","text":"hello"}`,
			want: &TextPart{Kind: KindText, Text: "hello"},
		},
		"file with uri": {
			raw: `{"kind":"file","file":{"name":"report.pdf","mimeType":"application/pdf","uri":"https://example.com/report.pdf"}}`,
			want: &FilePart{Kind: KindFile, File: FileContent{
				Name:     "report.pdf",
				MimeType: "application/pdf",
				URI:      "https://example.com/report.pdf",
			}},
		},
		"data": {
			raw:  `{"kind":"data","data":{"answer":"42"}}`,
			want: &DataPart{Kind: KindData, Data: map[string]any{"answer": "42"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := DecodePart([]byte(tt.raw))
			if err != nil {
				t.Fatalf("DecodePart() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodePart() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodePartMissingKind(t *testing.T) {
	_, err := DecodePart([]byte(`{"text":"no discriminator"}`))
	if err == nil {
		t.Fatal("DecodePart() expected error for missing kind")
	}
}

func TestDecodePartUnknownKindRoundTrips(t *testing.T) {
	raw := `{"kind":"video","codec":"av1"}`

	part, err := DecodePart([]byte(raw))
	if err != nil {
		t.Fatalf("DecodePart() error = %v", err)
	}

	opaque, ok := part.(*OpaquePart)
	if !ok {
		t.Fatalf("DecodePart() = %T, want *OpaquePart", part)
	}
	if opaque.PartKind() != "video" {
		t.Errorf("PartKind() = %q, want %q", opaque.PartKind(), "video")
	}

	out, err := json.Marshal(part)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != raw {
		t.Errorf("Marshal() = %s, want %s", out, raw)
	}
}

func TestPartsUnmarshal(t *testing.T) {
	raw := `[{"kind":"text","text":"a"},{"kind":"data","data":{"n":true}}]`

	var parts Parts
	if err := json.Unmarshal([]byte(raw), &parts); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := Parts{
		&TextPart{Kind: KindText, Text: "a"},
		&DataPart{Kind: KindData, Data: map[string]any{"n": true}},
	}
	if diff := cmp.Diff(want, parts); diff != "" {
		t.Errorf("Parts mismatch (-want +got):\n%s", diff)
	}
}

func TestPartMarshalForcesKind(t *testing.T) {
	// Literals built without the Kind field still encode the
	// discriminator.
	out, err := json.Marshal(&TextPart{Text: "x"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), `"kind":"text"`) {
		t.Errorf("Marshal() = %s, missing kind discriminator", out)
	}
}
