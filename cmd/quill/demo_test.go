package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDemoOutput(t *testing.T) {
	var out bytes.Buffer
	runDemo(&out)

	got := out.String()
	wantLines := []string{
		`After insert comma: "Hello, World"`,
		`After 2 undos: "First"`,
		`After undoing the replace: "The quick brown fox"`,
		`Result: "=== Chapter 1 ==="`,
		`4. Insert "," at 5`,
		"Can redo: false (the redo entries were discarded)",
		"All demonstrations completed.",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("demo output missing %q", want)
		}
	}
}
