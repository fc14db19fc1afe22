package tokenizer

import (
	"errors"
	"testing"
)

func TestTiktokenCounterWithoutEncoding(t *testing.T) {
	counter := tiktokenCounter{name: "cl100k_base"}
	if counter.Name() != "cl100k_base" {
		t.Fatalf("name = %q", counter.Name())
	}
	if _, err := counter.CountString("hello"); !errors.Is(err, errMissingEncoding) {
		t.Fatalf("expected errMissingEncoding, got %v", err)
	}
}
