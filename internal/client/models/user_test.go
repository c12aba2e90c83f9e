package models

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/localauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUserDatabase(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    UserDatabase
		corrupt bool
	}{
		{name: "empty input", in: "", want: UserDatabase{}},
		{name: "null", in: "null", want: UserDatabase{}},
		{name: "empty array", in: "[]", want: UserDatabase{}},
		{
			name: "two records keep order",
			in:   `[{"id":"1","name":"A","email":"a@b.com","password":"x"},{"id":"2","name":"B","email":"b@b.com","password":"y"}]`,
			want: UserDatabase{
				{ID: "1", Name: "A", Email: "a@b.com", Password: "x"},
				{ID: "2", Name: "B", Email: "b@b.com", Password: "y"},
			},
		},
		{name: "not json", in: "{oops", corrupt: true},
		{name: "object instead of array", in: `{"id":"1"}`, corrupt: true},
		{name: "unknown field", in: `[{"id":"1","email":"a@b.com","role":"admin"}]`, corrupt: true},
		{name: "missing email", in: `[{"id":"1","name":"A","password":"x"}]`, corrupt: true},
		{name: "trailing garbage", in: `[] []`, corrupt: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUserDatabase([]byte(tt.in))
			if tt.corrupt {
				require.ErrorIs(t, err, common.ErrCorruptState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeUserDatabase_FieldNames(t *testing.T) {
	data, err := EncodeUserDatabase(UserDatabase{{ID: "1", Name: "John Doe", Email: "john@x.com", Password: "d"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","name":"John Doe","email":"john@x.com","password":"d"}]`, string(data))

	data, err = EncodeUserDatabase(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSession_HasNoPassword(t *testing.T) {
	stored := StoredUser{ID: "7", Name: "David Lee", Email: "david@example.com", Password: "digest"}

	data, err := EncodeSession(stored.Public())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "password")
	assert.Equal(t, "David Lee", raw["name"])

	u, err := DecodeSession(data)
	require.NoError(t, err)
	assert.Equal(t, User{ID: "7", Name: "David Lee", Email: "david@example.com"}, u)
}

func TestDecodeSession_Corrupt(t *testing.T) {
	for _, in := range []string{"", "null", "{", `{"id":"1"}`, `{"id":"1","email":"a@b.com","password":"x"}`} {
		_, err := DecodeSession([]byte(in))
		assert.ErrorIs(t, err, common.ErrCorruptState, "input %q", in)
	}
}

func TestUserDatabase_FindByEmail(t *testing.T) {
	db := UserDatabase{
		{ID: "1", Email: "user1@example.com"},
		{ID: "2", Email: "Legacy@Example.com"},
	}

	assert.Equal(t, 0, db.FindByEmail("user1@example.com"))
	assert.Equal(t, 1, db.FindByEmail("legacy@example.com"))
	assert.Equal(t, -1, db.FindByEmail("nobody@example.com"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  ALICE@Example.com  "))
	assert.Equal(t, "Alice Johnson", NormalizeName("  Alice Johnson  "))
	assert.Equal(t, "PassWord", NormalizePassword(" PassWord\t"))
}
