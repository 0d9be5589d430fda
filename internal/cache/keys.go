package cache

import "fmt"

const keyPrefix = "career:"

// ResultsKey addresses the cached results view of one attempt.
func ResultsKey(userID, testID uint) string {
	return fmt.Sprintf("%sresults:%d:%d", keyPrefix, userID, testID)
}

// TestResultsPattern matches every cached results view of a test.
func TestResultsPattern(testID uint) string {
	return fmt.Sprintf("%sresults:*:%d", keyPrefix, testID)
}
