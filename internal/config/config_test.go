package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEditor_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadEditor(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEditor(), cfg)
}

func TestLoadEditor_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	content := `
log_level: debug
data_dir: /srv/l2/data
documents:
  items: stats/items/00000-00099.xml
  fixed_skills: legacy_skills.xml
http:
  port: 9090
database:
  enabled: true
  host: db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadEditor(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/l2/data", cfg.DataDir)
	assert.Equal(t, "stats/items/00000-00099.xml", cfg.Documents.Items)
	assert.Equal(t, "skills.xml", cfg.Documents.Skills, "unset keys keep defaults")
	assert.Equal(t, "legacy_skills.xml", cfg.Documents.FixedSkills)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://l2editor:l2editor@db:5432/l2editor?sslmode=disable", cfg.Database.DSN())
}

func TestLoadEditor_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o644))

	_, err := LoadEditor(path)
	assert.Error(t, err)
}

func TestEditor_Path(t *testing.T) {
	cfg := DefaultEditor()
	cfg.DataDir = "data"

	assert.Equal(t, filepath.Join("data", "items.xml"), cfg.Path("items.xml"))
	assert.Equal(t, "/abs/items.xml", cfg.Path("/abs/items.xml"))
	assert.Equal(t, "", cfg.Path(""))
}
