package utils

import (
	"encoding/base64"
	"fmt"
	"os"
)

// EncodeImageToBase64 reads the file at path and returns its standard base64
// encoding. A read failure is always reported as an error.
func EncodeImageToBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image for encoding: %w", err)
	}
	return EncodeBytesToBase64(data), nil
}

func EncodeBytesToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
