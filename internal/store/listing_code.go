package store

import (
	"encoding/base32"

	"github.com/google/uuid"
)

// Listing codes are eight uppercase alphanumerics shown to users for
// exact lookup. The look-alike letters I, L, O and U are excluded from
// the alphabet.
const codeAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ0123456789"

var codeEncoding = base32.NewEncoding(codeAlphabet).WithPadding(base32.NoPadding)

// NewListingNo derives a listing code from a listing UUID.
func NewListingNo(id uuid.UUID) string {
	return codeEncoding.EncodeToString(id[:])[:8]
}
