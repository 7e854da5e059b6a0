package service

import (
	"fmt"
	"path"
	"strings"
)

// DocumentStoragePath returns the deterministic object key for a document
// revision:
//
//	documents/{party_id}/{document_id}/{stem}_v{version:04d}{ext}
//
// The version is zero-padded to four digits and the extension lowercased; the
// stem is kept exactly as uploaded. The key depends on the row's own id, so it
// can only be computed after the metadata insert. The format must stay
// bit-exact: existing blobs are addressed by it.
func DocumentStoragePath(partyID, documentID int64, version int, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("documents/%d/%d/%s_v%04d%s", partyID, documentID, stem, version, strings.ToLower(ext))
}

// fileExtension returns the lowercased filename suffix including the dot.
func fileExtension(filename string) string {
	return strings.ToLower(path.Ext(strings.ReplaceAll(filename, `\`, "/")))
}
