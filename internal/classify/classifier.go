// Package classify decides whether a discovered file is ingested or replaced by a skip placeholder.
package classify

import (
	"fmt"
	"os"

	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/utils"
)

// Inspection is the classification of one file together with the size observed while stat'ing it.
type Inspection struct {
	Decision  types.SkipDecision
	SizeBytes int64
}

// Classify applies the skip policy to path: unreadable, then too large, then binary.
func Classify(path string, sizeLimitBytes int64) types.SkipDecision {
	return Inspect(path, sizeLimitBytes).Decision
}

// Inspect is Classify that also reports the file size.
func Inspect(path string, sizeLimitBytes int64) Inspection {
	fileInfo, statError := os.Stat(path)
	if statError != nil {
		return Inspection{Decision: unreadable(statError)}
	}
	if fileInfo.IsDir() {
		return Inspection{Decision: unreadable(fmt.Errorf("%s is a directory", path))}
	}

	sizeBytes := fileInfo.Size()
	if sizeBytes > sizeLimitBytes {
		return Inspection{
			Decision: types.SkipDecision{
				Skip:   true,
				Reason: fmt.Sprintf(types.SkipReasonTooLargeFormat, utils.FormatFileSize(sizeBytes)),
			},
			SizeBytes: sizeBytes,
		}
	}

	isBinary, sniffError := IsFileBinary(path)
	if sniffError != nil {
		return Inspection{Decision: unreadable(sniffError), SizeBytes: sizeBytes}
	}
	if isBinary {
		return Inspection{Decision: types.SkipDecision{Skip: true, Reason: types.SkipReasonBinary}, SizeBytes: sizeBytes}
	}
	return Inspection{SizeBytes: sizeBytes}
}

func unreadable(err error) types.SkipDecision {
	return types.SkipDecision{Skip: true, Reason: fmt.Sprintf(types.SkipReasonUnreadableFormat, err)}
}
