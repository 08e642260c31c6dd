package locator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/junioryono/locator/internal/configtree"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadConfigFile merges the file at path into the config tree of scope. The
// format follows the extension: .yaml/.yml, .json, or .env (dotenv).
func (c *Container) LoadConfigFile(path string, scope Scope) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".env" || filepath.Base(path) == ".env" {
		return c.LoadConfigEnv(scope, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	switch ext {
	case ".yaml", ".yml":
		err = c.LoadConfigYAML(f, scope)
	case ".json":
		err = c.LoadConfigJSON(f, scope)
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, ext)
	}

	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	c.s.logger.Debug("loaded config file", zap.String("path", path), zap.Stringer("scope", scope))
	return nil
}

// LoadConfigYAML decodes a YAML document from r and merges it into scope.
func (c *Container) LoadConfigYAML(r io.Reader, scope Scope) error {
	tree := make(map[string]any)
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}

	c.mergeConfigs(tree, scope)
	return nil
}

// LoadConfigJSON decodes a JSON object from r and merges it into scope.
func (c *Container) LoadConfigJSON(r io.Reader, scope Scope) error {
	tree := make(map[string]any)
	if err := jsonAPI.NewDecoder(r).Decode(&tree); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode json: %w", err)
	}

	c.mergeConfigs(tree, scope)
	return nil
}

// LoadConfigEnv reads dotenv files (".env" when none are given) and merges
// them into scope. Variable names are lower-cased and underscores become
// path separators: APP_NAME is stored at "app.name".
func (c *Container) LoadConfigEnv(scope Scope, files ...string) error {
	vars, err := godotenv.Read(files...)
	if err != nil {
		return fmt.Errorf("read dotenv: %w", err)
	}

	tree, err := envTree(vars)
	if err != nil {
		return ContainerError{Cause: err}
	}

	c.mergeConfigs(tree, scope)
	return nil
}

// envTree turns flat variables into a nested tree. Names are processed in
// sorted order so a collision such as APP next to APP_NAME is reported
// deterministically.
func envTree(vars map[string]string) (configtree.Tree, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := make(configtree.Tree)
	for _, name := range names {
		path := strings.ReplaceAll(strings.ToLower(name), "_", configtree.Separator)
		if err := configtree.Set(tree, path, vars[name]); err != nil {
			return nil, err
		}
	}

	return tree, nil
}
