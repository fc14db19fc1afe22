package utils

import (
	"fmt"
	"time"
)

const (
	bytesPerKilobyte       = 1024
	artifactTimestampStyle = "2006-01-02 15:04:05"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count for artifacts, e.g. "512 B" or "1.00 MB".
// Negative counts render as zero.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	if bytes < bytesPerKilobyte {
		return fmt.Sprintf("%d B", bytes)
	}
	scaled := float64(bytes)
	unitIndex := 0
	for scaled >= bytesPerKilobyte && unitIndex < len(sizeUnits)-1 {
		scaled /= bytesPerKilobyte
		unitIndex++
	}
	return fmt.Sprintf("%.2f %s", scaled, sizeUnits[unitIndex])
}

// MegabytesToBytes converts a fractional megabyte limit into bytes.
func MegabytesToBytes(megabytes float64) int64 {
	return int64(megabytes * bytesPerKilobyte * bytesPerKilobyte)
}

// KilobytesToBytes converts a fractional kilobyte limit into bytes.
func KilobytesToBytes(kilobytes float64) int64 {
	return int64(kilobytes * bytesPerKilobyte)
}

// FormatTimestamp stamps artifact headers in local time. The zero time yields "".
func FormatTimestamp(generatedAt time.Time) string {
	if generatedAt.IsZero() {
		return ""
	}
	return generatedAt.Local().Format(artifactTimestampStyle)
}
