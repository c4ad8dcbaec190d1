package util

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

// GenerateRandomSlug builds a URL-safe slug from a display name plus a short
// random suffix so two players with the same name never collide.
func GenerateRandomSlug(name string) string {
	baseSlug := slug.Make(name)
	shortID := shortuuid.New()[:8]

	return fmt.Sprintf("%s-%s", baseSlug, shortID)
}
