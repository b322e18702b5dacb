package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Editor holds all configuration for the data editor.
type Editor struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Documents
	DataDir   string    `yaml:"data_dir"`
	Documents Documents `yaml:"documents"`

	// HTTP editing surface
	HTTP HTTPConfig `yaml:"http"`

	// Revision history
	Database DatabaseConfig `yaml:"database"`
}

// Documents holds the document file names, relative to DataDir.
// An empty name disables that document kind.
type Documents struct {
	Items       string `yaml:"items"`
	Skills      string `yaml:"skills"`
	FixedSkills string `yaml:"fixed_skills"`
	SkillTrees  string `yaml:"skill_trees"`
}

// HTTPConfig holds the HTTP listener parameters.
type HTTPConfig struct {
	BindAddress    string   `yaml:"bind_address"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
// Revisions are only recorded when Enabled is true.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultEditor returns Editor config with sensible defaults.
func DefaultEditor() Editor {
	return Editor{
		LogLevel: "info",
		DataDir:  "data",
		Documents: Documents{
			Items:       "items.xml",
			Skills:      "skills.xml",
			FixedSkills: "",
			SkillTrees:  "skillTrees.xml",
		},
		HTTP: HTTPConfig{
			BindAddress:    "127.0.0.1",
			Port:           8088,
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "l2editor",
			Password: "l2editor",
			DBName:   "l2editor",
			SSLMode:  "disable",
		},
	}
}

// Path resolves a document file name against DataDir.
// Returns "" for a disabled document.
func (e Editor) Path(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.DataDir, name)
}

// LoadEditor loads editor config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEditor(path string) (Editor, error) {
	cfg := DefaultEditor()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
