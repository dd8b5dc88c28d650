// Package network is the typed network data model: Node and Link variants,
// Pattern and Curve tables, Controls, and the adjacency/name-index maps the
// solver consumes. Network exclusively owns Nodes, Links, Patterns and
// Controls; Curves are shared read-only (a pump and a tank may reference
// the same curve id) and are looked up by id through Network.Curves rather
// than copied. Adjacency lists hold indices only, never owning references
// (spec.md §9).
package network

import "hydrosolve/hydroerr"

// Network is the fully-resolved, ready-to-solve description of a pressurized
// pipe network. By the time a Network reaches the solver the link and
// control cross references (Link.StartNode/EndNode, Control.LinkIndex) have
// been resolved from name to index. Demand and head patterns are not: the
// EPS loop looks each one up by id in Patterns once per time-step.
type Network struct {
	Nodes    []*Node
	Links    []*Link
	Patterns map[string]*Pattern
	Curves   map[string]*Curve
	Controls []*Control

	NodeIndex map[string]int
	LinkIndex map[string]int

	// NodeLinks[n] lists, for each node n, the indices of links incident on
	// it (either endpoint). Built once in Finalize; read-only afterward.
	NodeLinks [][]int
}

// New returns an empty Network ready to be populated by a reader.
func New() *Network {
	return &Network{
		Patterns:  make(map[string]*Pattern),
		Curves:    make(map[string]*Curve),
		NodeIndex: make(map[string]int),
		LinkIndex: make(map[string]int),
	}
}

// AddNode appends a node, assigning it the next index. Returns a typed
// Input error if the id is already taken.
func (n *Network) AddNode(node *Node) error {
	if _, exists := n.NodeIndex[node.ID]; exists {
		return hydroerr.New(hydroerr.Input, node.ID, "duplicate node id")
	}
	node.Index = len(n.Nodes)
	n.NodeIndex[node.ID] = node.Index
	n.Nodes = append(n.Nodes, node)
	return nil
}

// AddLink appends a link, assigning it the next index. Returns a typed
// Input error if the id is already taken or an endpoint is unresolved.
func (n *Network) AddLink(link *Link) error {
	if _, exists := n.LinkIndex[link.ID]; exists {
		return hydroerr.New(hydroerr.Input, link.ID, "duplicate link id")
	}
	if link.StartNode == link.EndNode {
		return hydroerr.New(hydroerr.Input, link.ID, "link endpoints must be distinct")
	}
	if link.StartNode < 0 || link.StartNode >= len(n.Nodes) || link.EndNode < 0 || link.EndNode >= len(n.Nodes) {
		return hydroerr.New(hydroerr.Input, link.ID, "link references an unresolved node index")
	}
	link.Index = len(n.Links)
	n.LinkIndex[link.ID] = link.Index
	n.Links = append(n.Links, link)
	return nil
}

// NodeByID resolves a node name to its index, or an Input error.
func (n *Network) NodeByID(id string) (int, error) {
	idx, ok := n.NodeIndex[id]
	if !ok {
		return 0, hydroerr.New(hydroerr.Input, id, "unresolved node reference")
	}
	return idx, nil
}

// LinkByID resolves a link name to its index, or an Input error.
func (n *Network) LinkByID(id string) (int, error) {
	idx, ok := n.LinkIndex[id]
	if !ok {
		return 0, hydroerr.New(hydroerr.Input, id, "unresolved link reference")
	}
	return idx, nil
}

// Finalize builds NodeLinks adjacency and validates topology invariants:
// every link's endpoints are distinct and valid (checked incrementally by
// AddLink already), every tank's min<=initial<=max level, and no node has
// degree zero nor is an entire connected component free of a fixed head.
// Call once after all nodes/links/patterns/controls have been added.
func (n *Network) Finalize() error {
	n.NodeLinks = make([][]int, len(n.Nodes))
	for _, l := range n.Links {
		n.NodeLinks[l.StartNode] = append(n.NodeLinks[l.StartNode], l.Index)
		n.NodeLinks[l.EndNode] = append(n.NodeLinks[l.EndNode], l.Index)
		n.Nodes[l.EndNode].LinksTo = append(n.Nodes[l.EndNode].LinksTo, l.Index)
		n.Nodes[l.StartNode].LinksFrom = append(n.Nodes[l.StartNode].LinksFrom, l.Index)

		if l.Kind == Valve && (l.ValveType == PBV || l.ValveType == PCV) {
			return hydroerr.New(hydroerr.Unsupported, l.ID, "valve type %s is not implemented", l.ValveType)
		}
	}

	for _, nd := range n.Nodes {
		if nd.Kind == Tank {
			if !(nd.MinLevel <= nd.InitialLevel && nd.InitialLevel <= nd.MaxLevel) {
				return hydroerr.New(hydroerr.Input, nd.ID, "tank initial_level must lie within [min_level, max_level]")
			}
			if nd.VolumeCurveID != "" {
				return hydroerr.New(hydroerr.Unsupported, nd.ID, "tank volume curves are not implemented")
			}
			nd.Level = nd.InitialLevel
		}
		if len(n.NodeLinks[nd.Index]) == 0 {
			return hydroerr.New(hydroerr.Topology, nd.ID, "node has degree zero")
		}
	}

	if err := n.checkConnectivity(); err != nil {
		return err
	}
	return nil
}

// checkConnectivity verifies every connected component of the network
// contains at least one fixed-head node (Reservoir or Tank). A component
// with only Junctions has no head reference and the GGA system would be
// singular.
func (n *Network) checkConnectivity() error {
	visited := make([]bool, len(n.Nodes))
	for start := range n.Nodes {
		if visited[start] {
			continue
		}
		stack := []int{start}
		visited[start] = true
		component := []int{start}
		hasFixed := n.Nodes[start].IsFixed()
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, li := range n.NodeLinks[cur] {
				link := n.Links[li]
				other := link.EndNode
				if other == cur {
					other = link.StartNode
				}
				if !visited[other] {
					visited[other] = true
					if n.Nodes[other].IsFixed() {
						hasFixed = true
					}
					component = append(component, other)
					stack = append(stack, other)
				}
			}
		}
		if !hasFixed {
			return hydroerr.New(hydroerr.Topology, n.Nodes[start].ID, "connected component has no fixed-head node")
		}
	}
	return nil
}

// VariableNodes returns the indices of nodes whose head is solved for
// (Junctions), in network order. The solver partitions nodes into fixed and
// variable once, up front, and never re-checks (spec.md §9).
func (n *Network) VariableNodes() []int {
	var idx []int
	for _, nd := range n.Nodes {
		if !nd.IsFixed() {
			idx = append(idx, nd.Index)
		}
	}
	return idx
}
