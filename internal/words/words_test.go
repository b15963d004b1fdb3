package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	b := Builtin()
	assert.Equal(t, []string{"actions", "animals", "movies", "objects", "random"}, b.Categories())
	assert.Equal(t, 100, b.Len())
	assert.Contains(t, b.Words("Animals"), "cat")
}

func TestPool_UnionInRequestOrder(t *testing.T) {
	b := NewBank(map[string][]string{"a": {"one", "two"}, "b": {"three"}, "c": {"four"}})

	assert.Equal(t, []string{"three", "one", "two"}, b.Pool([]string{"b", "A"}))
}

func TestPool_FallsBackToEverything(t *testing.T) {
	b := NewBank(map[string][]string{"a": {"one"}, "b": {"two"}})

	assert.Equal(t, []string{"one", "two"}, b.Pool(nil))
	assert.Equal(t, []string{"one", "two"}, b.Pool([]string{"9", "nope"}))
}

func TestNewBank_DropsBlanks(t *testing.T) {
	b := NewBank(map[string][]string{" Food ": {" ", "taco "}, "": {"x"}, "empty": {}})

	assert.Equal(t, []string{"food"}, b.Categories())
	assert.Equal(t, []string{"taco"}, b.Words("food"))
}

func TestReadCSV(t *testing.T) {
	b, err := ReadCSV(strings.NewReader("category,word\nanimals,cat\nanimals, dog\nfood,pizza\nbroken\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"animals", "food"}, b.Categories())
	assert.Equal(t, []string{"cat", "dog"}, b.Words("animals"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("category,word\n"))
	assert.Error(t, err)
}

func TestLoadCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("sports,goal\nsports,net\n"), 0o600))

	b, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
