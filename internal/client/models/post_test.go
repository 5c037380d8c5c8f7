package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostRecord(t *testing.T) {
	refs := []string{"a", "b", "a"}
	before := time.Now().UTC()

	p := NewPostRecord("hello", refs, Coordinate{Latitude: 39.9, Longitude: 116.4})

	_, err := uuid.Parse(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Content)
	assert.Equal(t, []string{"a", "b", "a"}, p.ImageLocalIdentifiers)
	assert.Equal(t, 39.9, p.Latitude)
	assert.Equal(t, 116.4, p.Longitude)
	assert.False(t, p.CreatedAt.Before(before))
	assert.Equal(t, time.UTC, p.CreatedAt.Location())

	refs[0] = "changed"
	assert.Equal(t, "a", p.ImageLocalIdentifiers[0], "record must not alias the caller's slice")
}

func TestNewPostRecord_UniqueIDs(t *testing.T) {
	a := NewPostRecord("", []string{"x"}, Coordinate{})
	b := NewPostRecord("", []string{"x"}, Coordinate{})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPostRecord_ReferencesIsACopy(t *testing.T) {
	p := NewPostRecord("t", []string{"a"}, Coordinate{})
	refs := p.References()
	refs[0] = "b"
	assert.Equal(t, "a", p.ImageLocalIdentifiers[0])
}

func TestPostRecord_JSONRoundTrip(t *testing.T) {
	in := []PostRecord{
		NewPostRecord("hello", []string{"p1", "p2"}, Coordinate{Latitude: 39.9, Longitude: 116.4}),
		NewPostRecord("", []string{"p3"}, Coordinate{Latitude: -33.8688, Longitude: 151.2093}),
		NewPostRecord("text only", nil, Coordinate{Latitude: 0, Longitude: 0}),
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out []PostRecord
	require.NoError(t, json.Unmarshal(b, &out))

	require.Len(t, out, len(in))
	for i := range in {
		assert.True(t, in[i].Equal(out[i]), "record %d differs: %s", i, cmp.Diff(in[i], out[i]))
	}
}

func TestPostRecord_JSONKeys(t *testing.T) {
	p := PostRecord{
		ID:                    "11111111-1111-1111-1111-111111111111",
		Content:               "c",
		ImageLocalIdentifiers: []string{"r"},
		Latitude:              1.5,
		Longitude:             2.5,
		CreatedAt:             time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "11111111-1111-1111-1111-111111111111",
		"content": "c",
		"imageLocalIdentifiers": ["r"],
		"latitude": 1.5,
		"longitude": 2.5,
		"createdAt": "2026-02-27T10:00:00Z"
	}`, string(b))
}

func TestNewPostRecord_NilRefsEncodeAsEmptyArray(t *testing.T) {
	p := NewPostRecord("x", nil, Coordinate{})
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"imageLocalIdentifiers":[]`)
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "39.900000°, 116.400000°", Coordinate{Latitude: 39.9, Longitude: 116.4}.String())
	assert.Equal(t, "-33.868800°, 151.209300°", Coordinate{Latitude: -33.8688, Longitude: 151.2093}.String())
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, Coordinate{Latitude: 90, Longitude: -180}.Valid())
	assert.False(t, Coordinate{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Coordinate{Latitude: 0, Longitude: 181}.Valid())
}
