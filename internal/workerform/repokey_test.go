package workerform

import (
	"testing"

	"workerctl/sdk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoKeyRoundTrip(t *testing.T) {
	tests := []struct {
		owner string
		name  string
	}{
		{"acme", "api"},
		{"hatchet-dev", "hatchet"},
		{"a", "b"},
		{"org:with:colons", "repo.name"},
		{"Owner_1", "repo-with-dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.owner+"/"+tt.name, func(t *testing.T) {
			key, ok := EncodeRepoKey(tt.owner, tt.name)
			require.True(t, ok)

			owner, ok := DecodeRepoOwner(key)
			require.True(t, ok)
			name, ok := DecodeRepoName(key)
			require.True(t, ok)

			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestEncodeRepoKey_Empty(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		repo  string
	}{
		{"empty owner", "", "api"},
		{"empty name", "acme", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := EncodeRepoKey(tt.owner, tt.repo)
			assert.False(t, ok)
			assert.Empty(t, key)
		})
	}
}

func TestDecodeRepoKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "acme/api", "acme:api"} {
		_, ok := DecodeRepoOwner(key)
		assert.False(t, ok, "owner of %q", key)
		_, ok = DecodeRepoName(key)
		assert.False(t, ok, "name of %q", key)
	}
}

func TestDecodeRepoKey_SplitsOnFirstSeparator(t *testing.T) {
	owner, ok := DecodeRepoOwner("acme::api::v2")
	require.True(t, ok)
	assert.Equal(t, "acme", owner)

	name, ok := DecodeRepoName("acme::api::v2")
	require.True(t, ok)
	assert.Equal(t, "api::v2", name)
}

func TestRepoTable(t *testing.T) {
	table := NewRepoTable([]models.GithubRepo{
		{RepoOwner: "acme", RepoName: "api"},
		{RepoOwner: "a::b", RepoName: "c"},
		{RepoOwner: "a", RepoName: "b::c"},
		{RepoOwner: "acme", RepoName: "api"},
	})

	require.Equal(t, 3, table.Len())
	keys := table.Keys()
	require.Len(t, keys, 3)

	// pairs that collide under the string codec stay distinct
	first, ok := table.Lookup(keys[1])
	require.True(t, ok)
	second, ok := table.Lookup(keys[2])
	require.True(t, ok)
	assert.Equal(t, models.GithubRepo{RepoOwner: "a::b", RepoName: "c"}, first)
	assert.Equal(t, models.GithubRepo{RepoOwner: "a", RepoName: "b::c"}, second)

	key, ok := table.KeyOf("acme", "api")
	require.True(t, ok)
	assert.Equal(t, keys[0], key)

	_, ok = table.KeyOf("acme", "web")
	assert.False(t, ok)
	_, ok = table.Lookup("repo-99")
	assert.False(t, ok)
}

func TestRepoTable_Empty(t *testing.T) {
	table := NewRepoTable(nil)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Keys())
}
