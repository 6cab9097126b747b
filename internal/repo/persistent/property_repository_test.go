package persistent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSearchPredicate_BlankQuery(t *testing.T) {
	cond, args := textSearchPredicate("")
	assert.Empty(t, cond)
	assert.Nil(t, args)

	cond, args = textSearchPredicate("   ")
	assert.Empty(t, cond)
	assert.Nil(t, args)
}

func TestTextSearchPredicate_SingleTerm(t *testing.T) {
	cond, args := textSearchPredicate("lekki")

	assert.Equal(t, 7, strings.Count(cond, "ILIKE ?"))
	assert.Len(t, args, 7)
	for _, arg := range args {
		assert.Equal(t, "%lekki%", arg)
	}
}

// Each whitespace-separated term must match independently. A listing
// titled "Duplex in Ajah" qualifies for the query "lekki duplex" via
// the "duplex" term alone, so the predicate may never bind the query
// as one contiguous substring.
func TestTextSearchPredicate_SplitsTerms(t *testing.T) {
	cond, args := textSearchPredicate("lekki duplex")

	assert.Equal(t, 14, strings.Count(cond, "ILIKE ?"))
	assert.Len(t, args, 14)
	assert.NotContains(t, args, "%lekki duplex%")

	patterns := make(map[interface{}]int)
	for _, arg := range args {
		patterns[arg]++
	}
	assert.Equal(t, 7, patterns["%lekki%"])
	assert.Equal(t, 7, patterns["%duplex%"])

	// Term groups are OR'd: matching either term is enough.
	assert.Equal(t, 1, strings.Count(cond, ") OR ("))
}

func TestTextSearchPredicate_CoversAllRankedColumns(t *testing.T) {
	cond, _ := textSearchPredicate("ajah")

	for _, column := range []string{"title", "description", "address", "city", "state", "landmark", "lga"} {
		assert.Contains(t, cond, column+" ILIKE ?")
	}
}
