package service

import (
	"strconv"
	"strings"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

// deletedNamePrefix is the literal the platform puts in front of the numeric
// id when it anonymises a deleted account ("user4242").
const deletedNamePrefix = "user"

// ResolveOwner derives the canonical key of the account behind an owner
// reference. An explicit user id wins. Otherwise the id is recovered from the
// display name of a deleted account. When neither works the display name
// itself becomes the key; that only happens on inconsistent data and is not
// an error.
func ResolveOwner(owner domain.Owner) domain.UserKey {
	if owner.UserID != nil {
		return domain.KeyOf(*owner.UserID)
	}

	// The id runs from the first prefix up to the next one, if any.
	if parts := strings.Split(owner.DisplayName, deletedNamePrefix); len(parts) > 1 {
		if id, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64); err == nil {
			return domain.KeyOf(id)
		}
	}

	return domain.UserKey{Alias: owner.DisplayName}
}
