package utils_test

import (
	"testing"
	"time"

	"github.com/temirov/ingest/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0 B"},
		{name: "zero", bytes: 0, expected: "0 B"},
		{name: "bytes", bytes: 512, expected: "512 B"},
		{name: "one kilobyte", bytes: 1024, expected: "1.00 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.50 KB"},
		{name: "one megabyte", bytes: 1024 * 1024, expected: "1.00 MB"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10.00 MB"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestLimitConversions(t *testing.T) {
	if got := utils.MegabytesToBytes(0.001); got != 1048 {
		t.Fatalf("expected 1048 bytes for 0.001 MB, got %d", got)
	}
	if got := utils.MegabytesToBytes(10); got != 10*1024*1024 {
		t.Fatalf("expected 10 MB in bytes, got %d", got)
	}
	if got := utils.KilobytesToBytes(0.5); got != 512 {
		t.Fatalf("expected 512 bytes for 0.5 KB, got %d", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	location := time.Now().Location()
	testCases := []struct {
		name     string
		value    time.Time
		expected string
	}{
		{
			name:     "zero time",
			value:    time.Time{},
			expected: "",
		},
		{
			name:     "local timestamp",
			value:    time.Date(2024, time.January, 2, 15, 4, 5, 0, location),
			expected: "2024-01-02 15:04:05",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatTimestamp(testCase.value)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}
