package mongoquery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func regexFor(t *testing.T, q bson.M, field string) primitive.Regex {
	t.Helper()
	pred, ok := q[field].(bson.M)
	require.True(t, ok, "field %s must carry an operator document", field)
	rx, ok := pred["$regex"].(primitive.Regex)
	require.True(t, ok, "field %s must carry a $regex", field)
	return rx
}

func TestSearch_AllWordsInSingleField(t *testing.T) {
	q, err := New().
		Search(`hello wor*d "Shyam Dasgupta"`).AllWordsIn("title").
		Build()

	require.NoError(t, err)
	rx := regexFor(t, q, "title")
	assert.Equal(t, "i", rx.Options, "case-insensitivity travels as $options")
	assert.Equal(t, 3, strings.Count(rx.Pattern, "(?="), "one lookahead per token")
	assert.Contains(t, rx.Pattern, "hello")
	assert.Contains(t, rx.Pattern, `wor[\w-]*d`)
	assert.Contains(t, rx.Pattern, "Shyam Dasgupta")
}

func TestSearch_AnyWordInSingleField(t *testing.T) {
	q, err := New().
		Search("hello world").AnyWordIn("title").
		Build()

	require.NoError(t, err)
	rx := regexFor(t, q, "title")
	assert.NotContains(t, rx.Pattern, "(?=", "any-form is an alternation, not lookaheads")
	assert.Contains(t, rx.Pattern, "hello")
	assert.Contains(t, rx.Pattern, "world")
}

func TestSearch_MultipleFieldsBecomeOr(t *testing.T) {
	q, err := New().
		Search("pot").AnyWordIn("title", "body").
		Build()

	require.NoError(t, err)
	members, ok := q["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Contains(t, members[0].(bson.M), "title")
	assert.Contains(t, members[1].(bson.M), "body")
}

func TestSearch_EmptyTextContributesNothing(t *testing.T) {
	q, err := New().
		Field("a").Equals(1).
		Search("   ").AllWordsIn("title").
		Build()

	require.NoError(t, err)
	assert.Equal(t, bson.M{"a": 1}, q)
}

func TestSearch_WithinWordsDropsAnchor(t *testing.T) {
	bounded, err := New().Search("pot").AllWordsIn("title").Build()
	require.NoError(t, err)
	loose, err := New().Search("pot").WithinWords().AllWordsIn("title").Build()
	require.NoError(t, err)

	assert.Contains(t, regexFor(t, bounded, "title").Pattern, "^|")
	assert.NotContains(t, regexFor(t, loose, "title").Pattern, "^|")
}

func TestAndSearch_ReusesTextAndModeOnAnotherField(t *testing.T) {
	q, err := New().
		Search("pot").WithinWords().AllWordsIn("title").
		AndSearch().AllWordsIn("body").
		Build()

	require.NoError(t, err)
	assert.Equal(t, regexFor(t, q, "title"), regexFor(t, q, "body"))
}

func TestSearch_NoTargetFieldsRejected(t *testing.T) {
	_, err := New().Search("pot").AllWordsIn().Build()

	require.Error(t, err)
}

func TestSearch_SameTextOnSameFieldDeduplicates(t *testing.T) {
	q, err := New().
		Search("pot").AllWordsIn("title").
		AndSearch().AllWordsIn("title").
		Build()

	require.NoError(t, err)
	pred := q["title"].(bson.M)
	assert.Len(t, pred, 1)
	assert.NotContains(t, q, "$and")
}
