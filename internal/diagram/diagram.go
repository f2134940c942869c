package diagram

// Diagram is the node/edge graph a project stores as JSON. The backend holds
// a read-only snapshot for the duration of one request; the frontend owns
// mutation.
type Diagram struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeData struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Edge references nodes by id. Source/target are not checked against the
// node set here; a dangling reference is passed through to the client.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

// Operation is one edit instruction against a diagram, tagged by its "op"
// key ("add_node", "update_node", "delete_node", "add_edge", "delete_edge").
// Payload shapes are produced by the model and applied by the frontend, so
// they stay loosely typed and are not validated here.
type Operation = map[string]any
