package cache

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultsKeys(t *testing.T) {
	assert.Equal(t, "career:results:7:3", ResultsKey(7, 3))

	// redis glob syntax agrees with path.Match for these patterns
	match, err := path.Match(TestResultsPattern(3), ResultsKey(7, 3))
	assert.NoError(t, err)
	assert.True(t, match)

	match, _ = path.Match(TestResultsPattern(3), ResultsKey(7, 33))
	assert.False(t, match)
}
