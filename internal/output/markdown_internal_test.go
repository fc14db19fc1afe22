package output

import "testing"

func TestFenceFor(t *testing.T) {
	testCases := map[string]string{
		"plain":         "```",
		"inline `code`": "```",
		"```go\n```":    "````",
		"`````five":     "``````",
	}
	for content, expected := range testCases {
		if got := fenceFor([]byte(content)); got != expected {
			t.Errorf("fenceFor(%q) = %q, expected %q", content, got, expected)
		}
	}
}

func TestAnchorFor(t *testing.T) {
	testCases := map[string]string{
		"Web Frontend":      "web-frontend",
		"Files by Category": "files-by-category",
		"Table of Contents": "table-of-contents",
	}
	for heading, expected := range testCases {
		if got := anchorFor(heading); got != expected {
			t.Errorf("anchorFor(%q) = %q, expected %q", heading, got, expected)
		}
	}
}

func TestSizeBucketIndex(t *testing.T) {
	testCases := []struct {
		size     int64
		expected int
	}{
		{size: 0, expected: 0},
		{size: 1023, expected: 0},
		{size: 1024, expected: 1},
		{size: 50 * 1024, expected: 2},
		{size: 1024 * 1024, expected: 4},
	}
	for _, testCase := range testCases {
		if got := sizeBucketIndex(testCase.size); got != testCase.expected {
			t.Errorf("sizeBucketIndex(%d) = %d, expected %d", testCase.size, got, testCase.expected)
		}
	}
}
