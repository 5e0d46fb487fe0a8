package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	files map[string]map[string]string
	calls []string
}

func (f *fakeProvider) Read(filenames ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, name := range filenames {
		f.calls = append(f.calls, name)

		data, ok := f.files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		for k, v := range data {
			out[k] = v
		}
	}

	return out, nil
}

// TestMapKeyTo tests the typed accessors of the [Handler].
func TestMapKeyTo(t *testing.T) {
	t.Parallel()

	c := NewHandler(&fakeProvider{})
	envMap := map[string]string{
		"STR":   "value",
		"TRUE":  "true",
		"ONE":   "1",
		"JUNK":  "maybe",
		"LIST":  " a, b ,,c ",
		"EMPTY": "",
	}

	assert.Equal(t, "value", c.MapKeyToString(envMap, "STR"))
	assert.Equal(t, "", c.MapKeyToString(envMap, "MISSING"))

	assert.True(t, c.MapKeyToBool(envMap, "TRUE"))
	assert.True(t, c.MapKeyToBool(envMap, "ONE"))
	assert.False(t, c.MapKeyToBool(envMap, "JUNK"))
	assert.False(t, c.MapKeyToBool(envMap, "MISSING"))

	assert.Equal(t, []string{"a", "b", "c"}, c.MapKeyToList(envMap, "LIST"))
	assert.Nil(t, c.MapKeyToList(envMap, "EMPTY"))
}

// TestBuildEnvironment tests the layering of environment sources.
func TestBuildEnvironment(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{files: map[string]map[string]string{
		"one.env": {"A": "file1", "B": "file1"},
		"two.env": {"B": "file2", "C": "file2"},
	}}
	c := NewHandler(provider)

	t.Run("Success_Layering", func(t *testing.T) {
		env, err := c.BuildEnvironment(EnvironmentSpec{
			Base:      []string{"A=base", "Z=base"},
			Files:     []string{"one.env", "two.env"},
			Overrides: []string{"C=override", "D=x=y"},
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"A": "file1",
			"B": "file2",
			"C": "override",
			"D": "x=y",
			"Z": "base",
		}, env)
	})

	t.Run("Success_Clear", func(t *testing.T) {
		env, err := c.BuildEnvironment(EnvironmentSpec{
			Base:  []string{"A=base"},
			Clear: true,
		})
		require.NoError(t, err)
		assert.Empty(t, env)
	})

	t.Run("Fail_MissingFile", func(t *testing.T) {
		_, err := c.BuildEnvironment(EnvironmentSpec{Files: []string{"nope.env"}})
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "nope.env")
	})

	t.Run("Fail_InvalidOverride", func(t *testing.T) {
		for _, kv := range []string{"NOVALUE", "=x"} {
			_, err := c.BuildEnvironment(EnvironmentSpec{Overrides: []string{kv}})
			require.ErrorIs(t, err, ErrInvalidAssignment)
		}
	})
}

// TestParseEnviron tests the conversion of NAME=value entries.
func TestParseEnviron(t *testing.T) {
	t.Parallel()

	env := ParseEnviron([]string{"A=1", "A=2", "B=", "junk", "=nameless", "C=a=b"})

	assert.Equal(t, map[string]string{"A": "1", "B": "", "C": "a=b"}, env)
}

// TestGodotenvProvider tests the provider against real files.
func TestGodotenvProvider(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")

	require.NoError(t, os.WriteFile(first, []byte("# comment\nA=1\nexport B=\"two words\"\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("A=override\n"), 0o600))

	p := &GodotenvProvider{}

	t.Run("Success", func(t *testing.T) {
		data, err := p.Read(first, second)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "override", "B": "two words"}, data)
	})

	t.Run("Fail_Missing", func(t *testing.T) {
		_, err := p.Read(filepath.Join(dir, "missing.env"))
		require.Error(t, err)
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "(config-godotenv)")
	})
}
