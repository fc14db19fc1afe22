package classify

import (
	"errors"
	"io"
	"os"
)

const (
	// sniffLength defines the maximum number of bytes read when detecting binary content.
	sniffLength = 8000
	// controlByteThreshold is the share of control bytes above which a sample is binary.
	controlByteThreshold = 0.3
)

// IsBinary reports whether the provided byte slice appears to contain binary data.
// Any NUL byte, or a control byte density above thirty percent, marks the data as binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	controlBytes := 0
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
		if isControlByte(byteValue) {
			controlBytes++
		}
	}
	return float64(controlBytes)/float64(len(data)) > controlByteThreshold
}

// IsFileBinary reads up to sniffLength bytes from the file at path and determines
// if the content appears to be binary.
//
// #nosec G304
func IsFileBinary(path string) (bool, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && !errors.Is(readError, io.EOF) && !errors.Is(readError, io.ErrUnexpectedEOF) {
		return false, readError
	}
	return IsBinary(buffer[:bytesRead]), nil
}

// isControlByte treats ASCII control characters other than common whitespace as suspicious.
func isControlByte(value byte) bool {
	switch value {
	case '\n', '\r', '\t', '\f', '\b', 0x1b:
		return false
	}
	return value < 0x20 || value == 0x7f
}
