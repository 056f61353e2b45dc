package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewProductID returns a fresh id such as "E-1a2b3c4d", prefixed by the
// kind's initial.
func NewProductID(kind Kind) string {
	prefix := "P"
	if kind != "" {
		prefix = strings.ToUpper(string(kind)[:1])
	}
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
