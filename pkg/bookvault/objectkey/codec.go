// Package objectkey derives object-storage keys from previously issued
// asset URLs, so no separate key field has to be persisted alongside the
// asset reference.
package objectkey

import "strings"

// Derive returns the storage key for an asset URL of the form
// .../<folder>/<filename>.<ext>: the last two path segments with the
// extension stripped, e.g.
//
//	https://cdn.example.com/v1/book-covers/af3c1e.jpg -> book-covers/af3c1e
//
// Derive is pure and idempotent: applying it to its own output yields the
// same key. A URL without an extension or folder is handled by stripping
// whatever is present.
func Derive(assetURL string) string {
	segments := strings.Split(assetURL, "/")

	name := segments[len(segments)-1]
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}

	if len(segments) < 2 {
		return name
	}
	return segments[len(segments)-2] + "/" + name
}
