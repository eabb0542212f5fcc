package queryfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	qerrors "github.com/shyam-dasgupta/mongo-query-builder/internal/errors"
	"github.com/shyam-dasgupta/mongo-query-builder/pkg/mongoquery"
)

const sampleQuery = `
fields:
  - field: age
    gt: 21
    lte: 65
  - field: status
    in: [active, pending]
or:
  - members:
      - - field: role
          equals: admin
      - - field: owner
          equals: true
`

func TestParse_Sample(t *testing.T) {
	q, err := Parse([]byte(sampleQuery))
	require.NoError(t, err)

	require.Len(t, q.Fields, 2)
	assert.Equal(t, "age", q.Fields[0].Field)
	assert.Equal(t, 21, q.Fields[0].Gt)
	require.Len(t, q.Or, 1)
	require.Len(t, q.Or[0].Members, 2)
}

func TestBuild_Sample(t *testing.T) {
	q, err := Parse([]byte(sampleQuery))
	require.NoError(t, err)

	doc, err := q.Build()
	require.NoError(t, err)

	assert.Equal(t, bson.M{
		"age":    bson.M{"$gt": 21, "$lte": 65},
		"status": bson.M{"$in": bson.A{"active", "pending"}},
		"$or": bson.A{
			bson.M{"role": "admin"},
			bson.M{"owner": true},
		},
	}, doc)
}

func TestBuild_MatchesEquivalentChainedCalls(t *testing.T) {
	q, err := Parse([]byte(sampleQuery))
	require.NoError(t, err)
	fromFile, err := q.Build()
	require.NoError(t, err)

	chained, err := mongoquery.New().
		Field("age").GreaterThan(21).LessOrEquals(65).
		AndField("status").In("active", "pending").
		Either().Field("role").Equals("admin").
		Or().Field("owner").Equals(true).
		Build()
	require.NoError(t, err)

	assert.Equal(t, chained, fromFile)
}

func TestBuild_SearchClause(t *testing.T) {
	q, err := Parse([]byte(`
search:
  - text: hello world
    fields: [title, body]
    mode: any
`))
	require.NoError(t, err)

	doc, err := q.Build()
	require.NoError(t, err)

	members, ok := doc["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, members, 2)
}

func TestParse_RejectsClauseWithoutFieldName(t *testing.T) {
	_, err := Parse([]byte("fields:\n  - gt: 2\n"))

	require.Error(t, err)
	assert.True(t, qerrors.IsCode(err, qerrors.ErrCodeQueryFileInvalid))
}

func TestParse_RejectsUnknownSearchMode(t *testing.T) {
	_, err := Parse([]byte(`
search:
  - text: x
    fields: [title]
    mode: sometimes
`))

	require.Error(t, err)
	assert.True(t, qerrors.IsCode(err, qerrors.ErrCodeQueryFileInvalid))
}

func TestParse_RejectsSearchWithoutFields(t *testing.T) {
	_, err := Parse([]byte("search:\n  - text: x\n"))

	require.Error(t, err)
	assert.True(t, qerrors.IsCode(err, qerrors.ErrCodeQueryFileInvalid))
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("fields: ["))

	require.Error(t, err)
	assert.True(t, qerrors.IsCode(err, qerrors.ErrCodeQueryFileInvalid))
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleQuery), 0o644))

	q, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, q.Fields, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.True(t, qerrors.IsCode(err, qerrors.ErrCodeQueryFileInvalid))
}
