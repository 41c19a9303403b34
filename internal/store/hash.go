package store

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// lineHashDomain separates line hashes from any other SHA-256 use.
const lineHashDomain = "asstags/line/v1"

// LineHash returns the history key for a line's text. The text is NFC
// normalized first, so composed and decomposed spellings hash alike.
func LineHash(text string) string {
	return hashWithDomain(lineHashDomain, []byte(norm.NFC.String(text)))
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
