package utils

import (
	"regexp"
	"strings"
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// FileExtension returns the lower-cased part after the last dot, or "".
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// AllowedFile reports whether the upload has one of the accepted image extensions.
func AllowedFile(filename string) bool {
	return allowedExtensions[FileExtension(filename)]
}

// SecureFilename flattens a client supplied name into something safe to put
// on disk: path separators and whitespace become "_", anything outside
// [A-Za-z0-9_.-] is dropped, and leading/trailing dots or underscores are
// trimmed. The result may be empty.
func SecureFilename(filename string) string {
	filename = strings.NewReplacer("/", " ", "\\", " ").Replace(filename)
	filename = strings.Join(strings.Fields(filename), "_")
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")
	return strings.Trim(filename, "._")
}

// TempUploadName builds a per-request unique file name for an upload,
// keeping a sanitized stem and the lower-cased extension.
func TempUploadName(filename string) string {
	stem, ext := filename, ""
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		stem, ext = filename[:idx], strings.ToLower(filename[idx+1:])
	}

	name := NewRequestToken()
	if s := SecureFilename(stem); s != "" {
		name += "_" + s
	}
	if e := SecureFilename(ext); e != "" {
		name += "." + e
	}
	return name
}
