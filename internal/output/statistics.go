package output

import (
	"sort"

	"github.com/temirov/ingest/internal/language"
	"github.com/temirov/ingest/internal/types"
)

const (
	kilobyte = 1024
	megabyte = 1024 * kilobyte
)

// sizeBuckets are upper bounds, exclusive; the last bucket is open ended.
var sizeBuckets = []struct {
	label      string
	upperBound int64
}{
	{label: "< 1 KB", upperBound: kilobyte},
	{label: "1 KB to 10 KB", upperBound: 10 * kilobyte},
	{label: "10 KB to 100 KB", upperBound: 100 * kilobyte},
	{label: "100 KB to 1 MB", upperBound: megabyte},
	{label: ">= 1 MB", upperBound: -1},
}

type countEntry struct {
	name  string
	count int
}

type detectedFile struct {
	entry     types.FileEntry
	detection types.LanguageDetection
}

// projectStatistics is computed from the walk alone, before any content is read.
type projectStatistics struct {
	files           []detectedFile
	totalBytes      int64
	categories      []countEntry
	languages       []countEntry
	sizeBuckets     []countEntry
	filesByCategory map[string][]detectedFile
}

func collectStatistics(files []types.FileEntry) projectStatistics {
	statistics := projectStatistics{
		files:           make([]detectedFile, 0, len(files)),
		filesByCategory: map[string][]detectedFile{},
	}
	categoryCounts := map[string]int{}
	languageCounts := map[string]int{}
	bucketCounts := make([]int, len(sizeBuckets))

	for _, file := range files {
		detection := language.Detect(file.Path)
		detected := detectedFile{entry: file, detection: detection}
		statistics.files = append(statistics.files, detected)
		statistics.totalBytes += file.SizeBytes
		categoryCounts[detection.Category]++
		languageCounts[detection.Language]++
		statistics.filesByCategory[detection.Category] = append(statistics.filesByCategory[detection.Category], detected)
		bucketCounts[sizeBucketIndex(file.SizeBytes)]++
	}

	for _, category := range language.Categories() {
		if count := categoryCounts[category]; count > 0 {
			statistics.categories = append(statistics.categories, countEntry{name: category, count: count})
		}
	}

	for languageName, count := range languageCounts {
		statistics.languages = append(statistics.languages, countEntry{name: languageName, count: count})
	}
	sort.Slice(statistics.languages, func(left, right int) bool {
		if statistics.languages[left].count != statistics.languages[right].count {
			return statistics.languages[left].count > statistics.languages[right].count
		}
		return statistics.languages[left].name < statistics.languages[right].name
	})

	for index, bucket := range sizeBuckets {
		statistics.sizeBuckets = append(statistics.sizeBuckets, countEntry{name: bucket.label, count: bucketCounts[index]})
	}
	return statistics
}

func sizeBucketIndex(sizeBytes int64) int {
	for index, bucket := range sizeBuckets {
		if bucket.upperBound < 0 || sizeBytes < bucket.upperBound {
			return index
		}
	}
	return len(sizeBuckets) - 1
}

// topLanguages returns at most limit languages, most frequent first.
func (statistics projectStatistics) topLanguages(limit int) []countEntry {
	if limit <= 0 || limit >= len(statistics.languages) {
		return statistics.languages
	}
	return statistics.languages[:limit]
}

func percentage(count int, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) * 100 / float64(total)
}
