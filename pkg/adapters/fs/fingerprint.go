package fs

import (
	"strings"

	"github.com/inful/mdfp"
)

// fingerprint computes a stable content hash for a document from its raw parts.
// Line endings are folded to LF so that a checkout on Windows hashes the same.
func fingerprint(frontmatter, body []byte) string {
	fm := strings.ReplaceAll(string(frontmatter), "\r\n", "\n")
	fm = strings.TrimSuffix(fm, "\n")
	b := strings.ReplaceAll(string(body), "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(fm, b)
}
