package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"TAG", "FOLDER", "NOTES"},
		{"#work", "projects/work", "12"},
		{"#ideas", "/", "3"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"TAG     FOLDER         NOTES",
		"#work   projects/work     12",
		"#ideas  /                  3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatWideRunes(t *testing.T) {
	rows := [][]string{
		{"日本", "x"},
		{"ab", "y"},
	}
	got := Format(rows, nil)
	want := []string{
		"日本  x",
		"ab    y",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table: %q", got)
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "b"}, {"long"}}, nil)
	want := []string{"a     b", "long"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table: %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}
