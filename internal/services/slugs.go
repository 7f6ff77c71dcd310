package services

import (
	"fmt"

	"github.com/gosimple/slug"
)

// slugChecker is the slice of the repositories used for slug uniqueness.
type slugChecker interface {
	ExistsSlug(slug string) (bool, error)
}

// uniqueSlug derives a URL slug from base and, when another row already uses
// it, disambiguates with a fragment of the owning id.
func uniqueSlug(repo slugChecker, base, id string) (string, error) {
	candidate := slug.Make(base)
	taken, err := repo.ExistsSlug(candidate)
	if err != nil {
		return "", fmt.Errorf("failed to check slug %s: %w", candidate, err)
	}
	if !taken {
		return candidate, nil
	}
	fragment := id
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	return candidate + "-" + fragment, nil
}
