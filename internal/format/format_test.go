package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID      string            `json:"id" yaml:"id"`
	SavedAt string            `json:"savedAt" yaml:"savedAt"`
	Count   int               `json:"count" yaml:"count"`
	Tags    []string          `json:"tags" yaml:"tags"`
	Props   map[string]string `json:"props" yaml:"props"`
	Missing *string           `json:"missing" yaml:"missing"`
}

func testValue() sample {
	return sample{
		ID:      "blk-1",
		SavedAt: "2026-02-08",
		Count:   3,
		Tags:    []string{"a", "b"},
		Props:   map[string]string{"fontSize": "16"},
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testValue(), "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{:count 3 :id "blk-1" :missing nil :props {:font-size "16"} :saved-at "2026-02-08" :tags ["a" "b"]}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected edn:\n got %s\nwant %s", got, want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"items": []any{}, "n": 1}, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "{\n  :items []\n  :n 1\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected pretty edn:\n%q", got)
	}
}

func TestWrite_YAMLAndJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testValue(), "yaml", false); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "id: blk-1\n") || !strings.Contains(buf.String(), "fontSize: \"16\"") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, testValue(), "", false); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `{"id":"blk-1"`) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "toml", false); err == nil {
		t.Fatalf("expected error")
	}
}

func TestKeyword(t *testing.T) {
	cases := map[string]string{
		"id":            ":id",
		"preConditions": ":pre-conditions",
		"sectionId":     ":section-id",
		"snake_case":    ":snake-case",
	}
	for in, want := range cases {
		if got := Keyword(in); got != want {
			t.Fatalf("Keyword(%q)=%q, want %q", in, got, want)
		}
	}
}
