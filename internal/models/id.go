package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID builds an opaque row id like "trans_9f1c...". Every table is keyed by
// these client-generated strings; the store enforces nothing beyond uniqueness.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
