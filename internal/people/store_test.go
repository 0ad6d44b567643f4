package people

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAndList(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "peoples.txt"))

	added, err := store.Add("Alice", "alice@example.com", "+49 151 1234")
	require.NoError(t, err)
	assert.Equal(t, "Alice", added.Name)

	_, err = store.Add("Bob", "bob@example.com", "")
	require.NoError(t, err)

	persons, err := store.List()
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, Person{Name: "Alice", Email: "alice@example.com", Phone: "+49 151 1234"}, persons[0])
	// missing phone is stored as "-"
	assert.Equal(t, "-", persons[1].Phone)
}

func TestStoreListMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "peoples.txt"))

	persons, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, persons)
}

func TestStoreListSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peoples.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice,alice@example.com,-\n\n  \nBob,bob@example.com\n"), 0600))

	persons, err := NewStore(path).List()
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "Bob", persons[1].Name)
	assert.Empty(t, persons[1].Phone)
}

func TestStoreAddValidation(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "peoples.txt"))

	_, err := store.Add("", "alice@example.com", "")
	assert.Error(t, err)

	_, err = store.Add("Alice", "", "")
	assert.Error(t, err)

	_, err = store.Add("Alice", "not-an-email", "")
	assert.Error(t, err)

	_, err = store.Add("Last, First", "alice@example.com", "")
	assert.Error(t, err)
}
