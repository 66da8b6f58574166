package utils

import "fmt"

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// FileTooLargeMessage is the 413 error text for a body limit of max bytes.
func FileTooLargeMessage(max int64) string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", max>>20)
}
