package sink

import (
	"encoding/json"

	"github.com/matzehuels/mindmap/pkg/layout"
)

type jsonOutput struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Nodes  []layout.Node `json:"nodes"`
	Links  []jsonLink    `json:"links"`
}

type jsonLink struct {
	Parent int    `json:"parent"`
	Child  int    `json:"child"`
	Path   string `json:"path"`
}

// RenderJSON exports the layout nodes and connector paths as pretty-printed
// JSON. Width and height are the vector document size.
func RenderJSON(l layout.Layout) ([]byte, error) {
	w, h := Size(l)
	out := jsonOutput{
		Width:  w,
		Height: h,
		Nodes:  l.Nodes,
		Links:  make([]jsonLink, 0, len(l.Nodes)),
	}
	if out.Nodes == nil {
		out.Nodes = []layout.Node{}
	}
	for _, link := range l.Connectors() {
		out.Links = append(out.Links, jsonLink{
			Parent: link.Parent,
			Child:  link.Child,
			Path:   PathData(link.Path),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
