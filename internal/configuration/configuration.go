// Package configuration reads environment files and assembles the environment
// handed to an executed program.
package configuration

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

const (
	SettingChdir            = "NULEXEC_CHDIR"
	SettingChroot           = "NULEXEC_CHROOT"
	SettingSearch           = "NULEXEC_SEARCH"
	SettingClearEnv         = "NULEXEC_CLEAR_ENV"
	SettingClearInheritable = "NULEXEC_CLEAR_INHERITABLE"
	SettingEnvFiles         = "NULEXEC_ENV_FILES"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads environment files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

// MapKeyToString returns the value of key, or an empty string.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToBool returns the boolean value of key, or false if it is missing or
// not a boolean.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) bool {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return false
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}

	return boolValue
}

// MapKeyToList returns the comma separated value of key as a list, skipping
// empty elements.
func (c *Handler) MapKeyToList(envMap map[string]string, key string) []string {
	var list []string
	for _, elem := range strings.Split(c.MapKeyToString(envMap, key), ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			list = append(list, elem)
		}
	}

	return list
}

// EnvironmentSpec describes how to assemble an environment. Later sources
// override earlier ones: Base, then Files in order, then Overrides.
type EnvironmentSpec struct {
	Base      []string // NAME=value, as returned by [os.Environ]
	Clear     bool     // ignore Base
	Files     []string
	Overrides []string // NAME=value
}

// BuildEnvironment assembles an environment map from spec.
func (c *Handler) BuildEnvironment(spec EnvironmentSpec) (map[string]string, error) {
	env := make(map[string]string)

	if !spec.Clear {
		maps.Copy(env, ParseEnviron(spec.Base))
	}

	for _, file := range spec.Files {
		data, err := c.ReadGeneric(file)
		if err != nil {
			return nil, fmt.Errorf("(config-env) %s: %w", file, err)
		}
		maps.Copy(env, data)
	}

	for _, kv := range spec.Overrides {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("(config-env) %w: %q", ErrInvalidAssignment, kv)
		}
		env[name] = value
	}

	return env, nil
}

// ParseEnviron converts NAME=value entries into a map. Entries without '='
// are skipped, the first of duplicate names wins as with getenv(3).
func ParseEnviron(entries []string) map[string]string {
	env := make(map[string]string, len(entries))
	for _, kv := range entries {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		if _, exists := env[name]; !exists {
			env[name] = value
		}
	}

	return env
}
