package workerform

import (
	"strconv"
	"strings"

	"workerctl/sdk/models"
)

// RepoKeySeparator joins repository owner and name in a composite repo key.
// Owners and names containing it do not round-trip; RepoTable avoids the issue.
const RepoKeySeparator = "::"

// EncodeRepoKey packs owner and name into one token. ok is false when either is empty.
func EncodeRepoKey(owner, name string) (key string, ok bool) {
	if owner == "" || name == "" {
		return "", false
	}
	return owner + RepoKeySeparator + name, true
}

// DecodeRepoOwner returns the part of key before the first separator
func DecodeRepoOwner(key string) (string, bool) {
	owner, _, found := strings.Cut(key, RepoKeySeparator)
	if key == "" || !found {
		return "", false
	}
	return owner, true
}

// DecodeRepoName returns the part of key after the first separator
func DecodeRepoName(key string) (string, bool) {
	_, name, found := strings.Cut(key, RepoKeySeparator)
	if key == "" || !found {
		return "", false
	}
	return name, true
}

// RepoTable maps opaque selection keys to repositories, so a single-value
// selector can carry an (owner, name) pair without encoding it into a string.
type RepoTable struct {
	keys  []string
	repos map[string]models.GithubRepo
}

// NewRepoTable assigns keys in list order; duplicate pairs keep their first key
func NewRepoTable(repos []models.GithubRepo) *RepoTable {
	t := &RepoTable{
		repos: make(map[string]models.GithubRepo, len(repos)),
	}
	for _, repo := range repos {
		if _, ok := t.KeyOf(repo.RepoOwner, repo.RepoName); ok {
			continue
		}
		key := "repo-" + strconv.Itoa(len(t.keys))
		t.keys = append(t.keys, key)
		t.repos[key] = repo
	}
	return t
}

// Keys returns the selection keys in list order
func (t *RepoTable) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of distinct repositories
func (t *RepoTable) Len() int {
	return len(t.keys)
}

// Lookup resolves a selection key
func (t *RepoTable) Lookup(key string) (models.GithubRepo, bool) {
	repo, ok := t.repos[key]
	return repo, ok
}

// KeyOf returns the selection key of a repository
func (t *RepoTable) KeyOf(owner, name string) (string, bool) {
	for _, key := range t.keys {
		repo := t.repos[key]
		if repo.RepoOwner == owner && repo.RepoName == name {
			return key, true
		}
	}
	return "", false
}
