package domain

import "github.com/gosimple/slug"

// Slugify derives the URL-safe secondary identifier from a human-readable
// source field. The result is lowercase, with non-ASCII characters
// transliterated to ASCII approximations, runs of non-alphanumeric characters
// collapsed into single hyphens, and leading/trailing hyphens stripped.
//
// Both users and tasks derive their slugs through this function so the
// algorithm cannot drift between the two.
func Slugify(source string) string {
	return slug.Make(source)
}
