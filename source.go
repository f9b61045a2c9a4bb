// The source loader is deliberately thin: read bytes, validate UTF-8,
// return a string plus the filename label diagnostics use. Everything
// about locating the file lives in discover.go.

package main

import (
	"os"
	"unicode/utf8"
)

func loadSource(path string) (src, filename string, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", wrapIoErr(err, "failed to read %s: %s", path, err)
	}
	if !utf8.Valid(b) {
		return "", "", newErrNoSpan(errIoFailure, "%s is not valid UTF-8", path)
	}
	return string(b), path, nil
}
