package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("test.cue", []byte(`
		grammar: "pairs.ll"
		format:  "json"
		entry:   "pair"
		watch:   true
	`))
	require.NoError(t, err)
	assert.Equal(t, &Config{Grammar: "pairs.ll", Format: "json", Entry: "pair", Watch: true}, c)

	c, err = Parse("empty.cue", nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, c)
}

func TestParseErrors(t *testing.T) {
	samples := []string{
		`format: "js"`,
		`package: "my-pkg"`,
		`entry: "a b"`,
		`watch: "yes"`,
		`grammar: ""`,
		`unknown: 1`,
		`grammar: `,
	}
	for i, s := range samples {
		_, err := Parse("bad.cue", []byte(s))
		assert.Error(t, err, "sample #%d", i)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "langlang.cue")
	require.NoError(t, os.WriteFile(path, []byte(`grammar: "g/pairs.ll", output: "/tmp/out.go"`), 0o666))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "g", "pairs.ll"), c.Grammar)
	assert.Equal(t, "/tmp/out.go", c.Output)

	_, err = Load(filepath.Join(dir, "missing.cue"))
	assert.True(t, os.IsNotExist(err))
}

func TestOverride(t *testing.T) {
	c := &Config{Grammar: "a.ll", Format: "go", Package: "p"}
	c.Override(Config{Format: "json", Entry: "e", Watch: true})
	assert.Equal(t, &Config{Grammar: "a.ll", Format: "json", Package: "p", Entry: "e", Watch: true}, c)
}
