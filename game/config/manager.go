package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Extensions lists the config file extensions the manager reads, in lookup order
var Extensions = []string{".json", ".yaml", ".yml"}

// DefaultConfigID is the config used when a session is created without one.
// Without a file of that name the default is a random roster.
const DefaultConfigID = "default"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}
	m.defaultConfig = m.loadDefaultConfig()
	return m, nil
}

// RandomConfig is the config of a game with eight random critters at the default locations
func RandomConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "random",
		Description: "Eight random critters at the default locations",
	}
}

// configID strips a known extension from a config name
func configID(name string) string {
	ext := filepath.Ext(name)
	for _, known := range Extensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// findFile returns the path of the file holding config name
func (m *Manager) findFile(name string) (string, error) {
	if ext := filepath.Ext(name); ext != "" && configID(name) != name {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", ErrConfigNotFound
		}
		return path, nil
	}
	for _, ext := range Extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// LoadConfig loads a configuration by name, with or without its extension.
// Only syntax is checked here; unknown critters and bad locations surface as
// warnings when a game is built from the config.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}
	m.configs[id] = config
	return config, nil
}

func (m *Manager) readConfig(name string) (*engine.GameConfig, error) {
	path, err := m.findFile(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.ParseGameConfig(path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return config, nil
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := configID(entry.Name())
		if id == entry.Name() || seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip unreadable configs
			continue
		}
		seen[id] = true
		configs = append(configs, NewConfigInfo(entry.Name(), config))
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// NewConfigInfo summarizes a config for listings
func NewConfigInfo(filename string, config *engine.GameConfig) *service.ConfigInfo {
	info := &service.ConfigInfo{
		Filename:     filename,
		ConfigID:     configID(filename),
		Name:         config.Name,
		Description:  config.Description,
		Critters:     config.Critters,
		RandomRoster: config.Critters == nil,
	}
	for _, c := range config.Critters {
		if strings.EqualFold(strings.TrimSpace(c), engine.RandomCritter) {
			info.RandomRoster = true
		}
	}

	setup, _ := engine.BuildSetup(config, nil)
	for _, loc := range setup.Locations {
		info.TotalMushrooms += loc.Mushrooms
	}
	return info
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	def := m.loadDefaultConfig()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

func (m *Manager) loadDefaultConfig() *engine.GameConfig {
	config, err := m.LoadConfig(DefaultConfigID)
	if err != nil {
		return RandomConfig()
	}
	return config
}

// validateFilename rejects config names that would resolve outside the
// config directory
func validateFilename(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		filepath.Base(name) != name {
		return fmt.Errorf("%w: config name %q must be a plain file name", ErrInvalidConfig, name)
	}
	return nil
}

// SaveConfig validates and writes a configuration. The format follows the
// extension of name (JSON when there is none).
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := validateFilename(name); err != nil {
		return err
	}
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	filename := name
	if configID(name) == name {
		filename = name + ".json"
	}

	data, err := engine.MarshalGameConfig(filename, config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := ValidateSchema(filename, data); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[configID(name)] = config
	m.mu.Unlock()

	return nil
}
