package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/tessellate/internal/application/port"
)

// Migrator implements port.ConfigMigrator for one config file.
type Migrator struct {
	// defaultViper holds a Viper instance with all defaults set.
	defaultViper *viper.Viper
	configFile   string
}

// NewMigrator creates a Migrator for configFile.
func NewMigrator(configFile string) *Migrator {
	v := viper.New()
	v.SetConfigType("toml")

	// A bare manager only to reuse setDefaults.
	m := &Manager{viper: v}
	m.setDefaults()

	return &Migrator{
		defaultViper: v,
		configFile:   configFile,
	}
}

// GetConfigFile returns the migrated file path.
func (m *Migrator) GetConfigFile() string {
	return m.configFile
}

// DetectChanges analyzes the config file and returns every detected change.
func (m *Migrator) DetectChanges() ([]port.KeyChange, error) {
	if _, err := os.Stat(m.configFile); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	userKeys, err := m.userKeysWithValues()
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	defaultKeys := m.defaultKeys()
	defaultSet := make(map[string]bool, len(defaultKeys))
	for _, k := range defaultKeys {
		defaultSet[k] = true
	}
	userSet := make(map[string]bool, len(userKeys))
	for k := range userKeys {
		userSet[k] = true
	}

	deprecated := findDeprecatedKeys(userKeys, defaultSet)
	missing := findMissingKeys(defaultKeys, userSet)
	renames, unmatchedDeprecated, unmatchedMissing := m.matchRenamedKeys(deprecated, missing, userKeys)

	var changes []port.KeyChange
	for oldKey, newKey := range renames {
		changes = append(changes, port.KeyChange{
			Type:     port.KeyChangeRenamed,
			OldKey:   oldKey,
			NewKey:   newKey,
			OldValue: formatValue(userKeys[oldKey]),
			NewValue: formatValue(m.defaultViper.Get(newKey)),
		})
	}
	for _, oldKey := range unmatchedDeprecated {
		changes = append(changes, port.KeyChange{
			Type:     port.KeyChangeRemoved,
			OldKey:   oldKey,
			OldValue: formatValue(userKeys[oldKey]),
		})
	}
	for _, newKey := range unmatchedMissing {
		changes = append(changes, port.KeyChange{
			Type:     port.KeyChangeAdded,
			NewKey:   newKey,
			NewValue: formatValue(m.defaultViper.Get(newKey)),
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changes[i].Type < changes[j].Type
		}
		return changeKey(changes[i]) < changeKey(changes[j])
	})
	return changes, nil
}

func changeKey(c port.KeyChange) string {
	if c.NewKey != "" {
		return c.NewKey
	}
	return c.OldKey
}

// Migrate rewrites the config file with missing keys added, renamed keys
// moved and deprecated keys dropped.
func (m *Migrator) Migrate() ([]string, error) {
	changes, err := m.DetectChanges()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, nil
	}

	userViper := viper.New()
	userViper.SetConfigFile(m.configFile)
	userViper.SetConfigType("toml")
	mgr := &Manager{viper: userViper}
	mgr.setDefaults()
	if err := userViper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var applied []string
	for _, change := range changes {
		switch change.Type {
		case port.KeyChangeRenamed:
			userViper.Set(change.NewKey, userViper.Get(change.OldKey))
			applied = append(applied, fmt.Sprintf("%s -> %s", change.OldKey, change.NewKey))
		case port.KeyChangeAdded:
			applied = append(applied, change.NewKey)
		case port.KeyChangeRemoved:
			applied = append(applied, fmt.Sprintf("(dropped: %s)", change.OldKey))
		}
	}

	cfg := &Config{}
	if err := userViper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode migrated config: %w", err)
	}
	if err := WriteConfigOrdered(cfg, m.configFile); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return applied, nil
}

func (m *Migrator) defaultKeys() []string {
	keys := m.defaultViper.AllKeys()
	sort.Strings(keys)
	return keys
}

// userKeysWithValues parses the TOML file into dot-notation keys.
func (m *Migrator) userKeysWithValues() (map[string]any, error) {
	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	result := make(map[string]any)
	flattenWithValues(raw, "", result)
	return result, nil
}

func flattenWithValues(data map[string]any, prefix string, result map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenWithValues(nested, key, result)
			continue
		}
		result[key] = v
	}
}

// findDeprecatedKeys returns user keys that don't exist in defaults.
func findDeprecatedKeys(userKeys map[string]any, defaultKeys map[string]bool) []string {
	var deprecated []string
	for key := range userKeys {
		if !keyOrRelatedExists(key, defaultKeys) {
			deprecated = append(deprecated, key)
		}
	}
	sort.Strings(deprecated)
	return deprecated
}

// findMissingKeys returns keys that are in defaults but not in user config.
func findMissingKeys(defaultKeys []string, userKeys map[string]bool) []string {
	missing := make([]string, 0)
	for _, key := range defaultKeys {
		if !keyOrRelatedExists(key, userKeys) {
			missing = append(missing, key)
		}
	}
	return missing
}

// keyOrRelatedExists checks if a key, any parent, or any child exists in keys.
func keyOrRelatedExists(key string, keys map[string]bool) bool {
	if keys[key] {
		return true
	}

	parts := strings.Split(key, ".")
	for i := len(parts) - 1; i > 0; i-- {
		if keys[strings.Join(parts[:i], ".")] {
			return true
		}
	}

	prefix := key + "."
	for k := range keys {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// matchRenamedKeys pairs deprecated keys with missing keys of the same
// section and type. Returns: renames, unmatched deprecated, unmatched missing.
func (m *Migrator) matchRenamedKeys(
	deprecated, missing []string,
	userKeys map[string]any,
) (map[string]string, []string, []string) {
	renames := make(map[string]string)
	usedDeprecated := make(map[string]bool)
	usedMissing := make(map[string]bool)

	for _, oldKey := range deprecated {
		for _, newKey := range missing {
			if usedMissing[newKey] {
				continue
			}
			if keysAreSimilar(oldKey, newKey) &&
				typesAreCompatible(typeName(userKeys[oldKey]), typeName(m.defaultViper.Get(newKey))) {
				renames[oldKey] = newKey
				usedDeprecated[oldKey] = true
				usedMissing[newKey] = true
				break
			}
		}
	}

	var unmatchedDeprecated []string
	for _, k := range deprecated {
		if !usedDeprecated[k] {
			unmatchedDeprecated = append(unmatchedDeprecated, k)
		}
	}
	var unmatchedMissing []string
	for _, k := range missing {
		if !usedMissing[k] {
			unmatchedMissing = append(unmatchedMissing, k)
		}
	}
	return renames, unmatchedDeprecated, unmatchedMissing
}

const (
	typeNameInt   = "int"
	typeNameFloat = "float"
)

func typesAreCompatible(oldType, newType string) bool {
	if oldType == newType {
		return true
	}
	// TOML writes 1 and 1.0 differently; both fill a float key.
	numeric := func(t string) bool { return t == typeNameInt || t == typeNameFloat }
	return numeric(oldType) && numeric(newType)
}

// keysAreSimilar checks if two keys are likely renames of each other.
func keysAreSimilar(oldKey, newKey string) bool {
	oldParts := strings.Split(oldKey, ".")
	newParts := strings.Split(newKey, ".")

	if len(oldParts) != len(newParts) || len(oldParts) < 2 {
		return false
	}
	for i := 0; i < len(oldParts)-1; i++ {
		if oldParts[i] != newParts[i] {
			return false
		}
	}

	oldLeaf := oldParts[len(oldParts)-1]
	newLeaf := newParts[len(newParts)-1]
	if strings.Contains(oldLeaf, newLeaf) || strings.Contains(newLeaf, oldLeaf) {
		return true
	}

	// Most underscore tokens must match.
	oldTokens := strings.Split(oldLeaf, "_")
	newTokens := strings.Split(newLeaf, "_")
	matches := 0
	matchedNew := make([]bool, len(newTokens))
	for _, ot := range oldTokens {
		for j, nt := range newTokens {
			if ot == nt && !matchedNew[j] {
				matches++
				matchedNew[j] = true
				break
			}
		}
	}
	minTokens := min(len(oldTokens), len(newTokens))
	return matches >= minTokens-1 && matches > 0
}

// typeName returns a human-readable type name for a value.
func typeName(value any) string {
	if value == nil {
		return "unknown"
	}

	t := reflect.TypeOf(value)
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeNameInt
	case reflect.Float32, reflect.Float64:
		return typeNameFloat
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "list"
	case reflect.Map:
		return "map"
	default:
		return t.String()
	}
}

// formatValue returns a short human-readable representation of a value.
func formatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return `""`
		}
		const maxStringLen = 50
		if len(v) > maxStringLen {
			return fmt.Sprintf("%q...", v[:maxStringLen-3])
		}
		return fmt.Sprintf("%q", v)
	case []any:
		return fmt.Sprintf("%v", v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("%v", value)
	case reflect.Map:
		return fmt.Sprintf("{%d entries}", rv.Len())
	default:
		return fmt.Sprintf("%v", value)
	}
}
