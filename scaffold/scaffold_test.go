package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polything/polysite/content"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "acme-site")

	created, err := Generate(dir, NewData(dir, "https://acme.example"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "content.yaml"),
		filepath.Join(dir, ".env.example"),
	}, created)

	env, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "POLYSITE_NAME=Acme Site")
	assert.Contains(t, string(env), "POLYSITE_URL=https://acme.example")

	f, err := os.Open(filepath.Join(dir, "content.yaml"))
	require.NoError(t, err)
	defer f.Close()
	snap, err := content.DecodeSnapshot(f)
	require.NoError(t, err)
	require.NoError(t, snap.Validate())
	assert.Len(t, snap.Pages, 3)
	assert.Equal(t, "https://acme.example/about", snap.Pages[1].SEO.Canonical)
}

func TestGenerateRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(dir, NewData(dir, ""))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already exists"))
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "My Site", ToTitle("my-site"))
	assert.Equal(t, "Mysite", ToTitle("mysite"))
	assert.Equal(t, "", ToTitle(""))
}
