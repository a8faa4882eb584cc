package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/safe-txdetails/view"
)

const (
	IDJSON = "json"
	IDYAML = "yaml"
)

// JSONRenderer writes the plan as indented JSON.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

func (JSONRenderer) ID() string { return IDJSON }

func (JSONRenderer) RenderTo(w io.Writer, plan view.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan as json: %w", err)
	}

	return nil
}

// YAMLRenderer writes the plan as YAML. Keys and their order follow the JSON encoding.
type YAMLRenderer struct{}

var _ Renderer = YAMLRenderer{}

func (YAMLRenderer) ID() string { return IDYAML }

func (YAMLRenderer) RenderTo(w io.Writer, plan view.Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	// JSON is a subset of YAML, parsing it keeps the key order of the encoding.
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to convert plan to yaml: %w", err)
	}
	clearStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode plan as yaml: %w", err)
	}

	return enc.Close()
}

// clearStyle switches flow collections and quoted scalars to the default block style.
// Strings that would read back as another type stay quoted.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
