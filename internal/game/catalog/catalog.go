// Package catalog holds the static definitions of cards, units, enemies,
// skills, heroes and tactics. Units and enemies are embedded YAML documents.
package catalog

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var (
	loadOnce sync.Once
	loadErr  error
)

func sortIDs[T ~string](ids []T) {
	slices.Sort(ids)
}

func decodeYAML(name string, out any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// ensureLoaded parses the embedded documents once. A parse failure is a
// build defect, so callers panic on it.
func ensureLoaded() {
	loadOnce.Do(func() {
		var enemyDocs []EnemyDefinition
		if err := decodeYAML("enemies.yaml", &enemyDocs); err != nil {
			loadErr = err
			return
		}
		if err := registerEnemies(enemyDocs); err != nil {
			loadErr = err
			return
		}
		var unitDocs []UnitDefinition
		if err := decodeYAML("units.yaml", &unitDocs); err != nil {
			loadErr = err
			return
		}
		loadErr = registerUnits(unitDocs)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("catalog: %v", loadErr))
	}
}

// Validate loads the embedded documents and reports the first error.
func Validate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	ensureLoaded()
	return nil
}
