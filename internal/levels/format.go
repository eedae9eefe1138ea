package levels

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/rolltiles/internal/core"
)

//go:embed level.schema.json
var schemaSource string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("level.schema.json", schemaSource)
})

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	View     yamlView          `yaml:"view,omitempty"`
	Tiles    []yamlTile        `yaml:"tiles"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

type yamlView struct {
	CellW int `yaml:"cell_w"`
	CellH int `yaml:"cell_h"`
}

// yamlTile positions may be fractional; they snap to the nearest cell.
type yamlTile struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	C string  `yaml:"c"` // Color as string
}

// Validate checks a level document against the level schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// The validator expects JSON values, so round-trip the YAML tree.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// Parse validates and decodes a YAML level file.
func Parse(data []byte) (Level, error) {
	if err := Validate(data); err != nil {
		return Level{}, err
	}

	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		View:     View{CellW: yl.View.CellW, CellH: yl.View.CellH},
		Tiles:    make([]TileSpec, 0, len(yl.Tiles)),
		Metadata: yl.Metadata,
	}
	for _, t := range yl.Tiles {
		color, _ := core.ParseColor(t.C)
		level.Tiles = append(level.Tiles, TileSpec{
			Cell:  core.V(t.X, t.Y).Round(),
			Color: color,
		})
	}
	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
