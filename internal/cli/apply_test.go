package cli

import (
	"testing"

	"github.com/fogbanklabs/fogbank/pkg/fog"
)

func TestParseOpSpec(t *testing.T) {
	tests := []struct {
		spec string
		want fog.Op
	}{
		{"paint:3,7", fog.Op{Kind: fog.OpPaint, Col: 3, Row: 7, Creator: "alice"}},
		{"erase:-2,0", fog.Op{Kind: fog.OpErase, Col: -2, Row: 0}},
		{"paint-rect:0,0:4,4", fog.Op{Kind: fog.OpPaintRect, Col: 0, Row: 0, Col2: 4, Row2: 4, Creator: "alice"}},
		{"erase-rect:1,1:2,2", fog.Op{Kind: fog.OpEraseRect, Col: 1, Row: 1, Col2: 2, Row2: 2, Requester: "alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseOpSpec(tt.spec, "alice", false)
			if err != nil {
				t.Fatalf("parseOpSpec(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("parseOpSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseOpSpecPrivileged(t *testing.T) {
	op, err := parseOpSpec("erase-rect:0,0:1,1", "gm", true)
	if err != nil {
		t.Fatalf("parseOpSpec: %v", err)
	}
	if !op.Privileged {
		t.Error("privileged flag should carry into the op")
	}
}

func TestParseOpSpecErrors(t *testing.T) {
	for _, spec := range []string{
		"paint",
		"paint:abc,0",
		"paint:3",
		"paint-rect:0,0",
		"teleport:0,0",
	} {
		if _, err := parseOpSpec(spec, "alice", false); err == nil {
			t.Errorf("parseOpSpec(%q) should fail", spec)
		}
	}
}
