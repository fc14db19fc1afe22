package aggregate

import (
	"bytes"
	"errors"
	"testing"

	"github.com/temirov/ingest/internal/types"
)

func TestRecordBlockCountsReadErrors(t *testing.T) {
	var stats types.AggregationStats
	recordBlock(&stats, Block{ReadError: errors.New("read failed"), Content: []byte("ignored")})
	recordBlock(&stats, Block{Decision: types.SkipDecision{Skip: true, Reason: types.SkipReasonBinary}})
	recordBlock(&stats, Block{Content: []byte("abc"), Tokens: 2})

	expected := types.AggregationStats{FilesProcessed: 1, FilesSkipped: 1, Errors: 1, TotalBytes: 3, TotalTokens: 2}
	if stats != expected {
		t.Fatalf("stats = %+v, expected %+v", stats, expected)
	}
}

func TestReadContentMissingFile(t *testing.T) {
	if _, _, err := readContent(openFile, "/nonexistent/ingest/file.txt", 10, 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTrimPartialRune(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{name: "ascii untouched", input: []byte("abc"), expected: []byte("abc")},
		{name: "complete two byte rune kept", input: []byte("aé"), expected: []byte("aé")},
		{name: "lead byte only dropped", input: []byte{'a', 0xC3}, expected: []byte("a")},
		{name: "partial three byte rune dropped", input: []byte{'a', 0xE2, 0x82}, expected: []byte("a")},
		{name: "partial four byte rune dropped", input: []byte{'a', 0xF0, 0x9F, 0x98}, expected: []byte("a")},
		{name: "complete invalid byte kept", input: []byte{'a', 0xFF}, expected: []byte{'a', 0xFF}},
		{name: "empty", input: []byte{}, expected: []byte{}},
	}
	for _, testCase := range testCases {
		if got := trimPartialRune(testCase.input); !bytes.Equal(got, testCase.expected) {
			t.Errorf("%s: trimPartialRune(%q) = %q, expected %q", testCase.name, testCase.input, got, testCase.expected)
		}
	}
}
