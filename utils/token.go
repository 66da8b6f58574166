package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewRequestToken returns a random token unique to one request. It is used
// to keep temp files of concurrent uploads apart.
func NewRequestToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
