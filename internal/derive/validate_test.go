package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidProjectKey(t *testing.T) {
	assert.True(t, ValidProjectKey("my_project-1.0:beta"))
	assert.True(t, ValidProjectKey(strings.Repeat("a", 400)))

	assert.False(t, ValidProjectKey(""))
	assert.False(t, ValidProjectKey("my project"))
	assert.False(t, ValidProjectKey("proj/ect"))
	assert.False(t, ValidProjectKey(strings.Repeat("a", 401)))
}

func TestRatingLetter(t *testing.T) {
	assert.Equal(t, "A", RatingLetter(1))
	assert.Equal(t, "C", RatingLetter(3.0))
	assert.Equal(t, "E", RatingLetter(5))
	assert.Equal(t, "?", RatingLetter(0))
	assert.Equal(t, "?", RatingLetter(7))
}
