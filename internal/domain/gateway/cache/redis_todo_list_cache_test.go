package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKey(t *testing.T) {
	limit := 20

	assert.Equal(t, "owner:u1:gen:0:offset:0:limit:all", listKey("u1", 0, 0, nil))
	assert.Equal(t, "owner:u1:gen:3:offset:40:limit:20", listKey("u1", 3, 40, &limit))
}

func TestGenerationPattern_MatchesOnlyOwnerGeneration(t *testing.T) {
	pattern := generationPattern("u1", 2)

	assert.Equal(t, "owner:u1:gen:2:*", pattern)
	assertMatches(t, pattern, listKey("u1", 2, 0, nil), true)
	assertMatches(t, pattern, listKey("u1", 3, 0, nil), false)
	assertMatches(t, pattern, generationKey("u1"), false)
}

func TestGenerationPattern_EscapesGlobCharacters(t *testing.T) {
	for _, ownerID := range []string{"*", "u?", "[a-z]*", `u\`} {
		pattern := generationPattern(ownerID, 1)

		assertMatches(t, pattern, listKey(ownerID, 1, 0, nil), true)
		assertMatches(t, pattern, listKey("other", 1, 0, nil), false)
		assertMatches(t, pattern, listKey("u1", 1, 0, nil), false)
	}
}

// path.Match shares the redis glob syntax for *, ?, [] and backslash escapes
func assertMatches(t *testing.T, pattern, key string, expected bool) {
	t.Helper()
	matched, err := path.Match(pattern, key)
	assert.NoError(t, err)
	assert.Equal(t, expected, matched, "pattern %q key %q", pattern, key)
}
