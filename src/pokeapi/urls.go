package pokeapi

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultSpriteBaseUrl = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"

// IdFromUrl extracts the id segment of a resource url such as
// https://pokeapi.co/api/v2/pokemon/132/. Resource urls end with a slash,
// so the id is the second-to-last path segment.
func IdFromUrl(resourceUrl string) string {
	parts := strings.Split(resourceUrl, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// NumericIdFromUrl is IdFromUrl parsed as a number.
func NumericIdFromUrl(resourceUrl string) (int32, error) {
	id, err := strconv.ParseInt(IdFromUrl(resourceUrl), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("no numeric id in %q: %w", resourceUrl, err)
	}
	return int32(id), nil
}

// SpriteUrl builds the thumbnail url for an id against the sprite hosting convention.
func SpriteUrl(spriteBaseUrl, id string) string {
	if spriteBaseUrl == "" {
		spriteBaseUrl = DefaultSpriteBaseUrl
	}
	return strings.TrimRight(spriteBaseUrl, "/") + "/" + id + ".png"
}

// ResourceUrl builds the canonical detail url for a numeric id.
func ResourceUrl(baseUrl string, id int32) string {
	return fmt.Sprintf("%s/pokemon/%d/", strings.TrimRight(baseUrl, "/"), id)
}
