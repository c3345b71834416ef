package ot

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
)

// NodeID addresses a table node within a Graph.
type NodeID int

// NoNode is the null link. Offsets to NoNode are written as 0.
const NoNode NodeID = -1

// tableNode is a sealed table body together with its pending offset fields.
type tableNode struct {
	body    []byte
	markers []offsetMarker
	defined bool
}

// Graph is an arena of table nodes. Nodes reference their children by NodeID
// through offset markers; the arena is the only owner of nodes. Two markers
// holding the same NodeID share one physical sub-table.
//
// Resolve lays out the nodes reachable from a root and computes every offset.
type Graph struct {
	nodes []tableNode
}

// NewGraph creates an empty arena.
func NewGraph() *Graph {
	return &Graph{nodes: make([]tableNode, 0, 16)}
}

// NewWriter returns a Writer for a new node of g.
func (g *Graph) NewWriter() *Writer {
	return &Writer{graph: g}
}

// Add seals w and stores its content as a new node.
func (g *Graph) Add(w *Writer) NodeID {
	assertf(w.graph == g, "Writer belongs to a different graph")
	assertf(!w.sealed, "Writer added twice")
	w.sealed = true
	g.nodes = append(g.nodes, tableNode{body: w.buf, markers: w.markers, defined: true})
	return NodeID(len(g.nodes) - 1)
}

// Declare reserves a node which will be defined later with Define. Parents may
// link to a declared node before its content is known.
func (g *Graph) Declare() NodeID {
	g.nodes = append(g.nodes, tableNode{})
	return NodeID(len(g.nodes) - 1)
}

// Define seals w and stores its content as the node reserved by Declare.
func (g *Graph) Define(id NodeID, w *Writer) {
	g.check(id)
	assertf(!g.nodes[id].defined, "node %d defined twice", id)
	assertf(w.graph == g, "Writer belongs to a different graph")
	assertf(!w.sealed, "Writer added twice")
	w.sealed = true
	g.nodes[id] = tableNode{body: w.buf, markers: w.markers, defined: true}
}

// Build encodes v into a new node of g.
func (g *Graph) Build(v Encoder) (NodeID, error) {
	w := g.NewWriter()
	if err := v.Encode(w); err != nil {
		return NoNode, err
	}
	return g.Add(w), nil
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Size returns the body size of a node, excluding its children.
func (g *Graph) Size(id NodeID) int {
	g.check(id)
	return len(g.nodes[id].body)
}

func (g *Graph) check(id NodeID) {
	assertf(id >= 0 && int(id) < len(g.nodes), "unknown node %d", id)
}

// --- Resolution ------------------------------------------------------------

// ResolveOption configures Graph.Resolve.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	share bool
}

// WithSharing lets Resolve merge sub-tables with identical content, so that
// several offsets address one physical table.
func WithSharing() ResolveOption {
	return func(c *resolveConfig) {
		c.share = true
	}
}

// Resolve lays out all nodes reachable from root into one byte stream and fills
// in every offset field.
//
// A node's body precedes the bodies of its children, and children follow in the
// order of their offset fields. A node referenced by more than one parent is
// placed after all of its parents, as offsets are unsigned. Each offset holds the
// distance from the start of the table containing the field to the start of the
// child. A 16-bit offset which cannot hold this distance fails with
// ErrWidthOverflow; a graph with a cycle fails with ErrCyclicGraph.
func (g *Graph) Resolve(root NodeID, opts ...ResolveOption) ([]byte, error) {
	g.check(root)
	cfg := resolveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := g.checkAcyclic(root); err != nil {
		return nil, err
	}
	canon := g.identity()
	if cfg.share {
		canon = g.canonicalize(root)
	}
	order := g.placement(canon[root], canon)
	start := make([]int, len(g.nodes))
	size := 0
	for _, id := range order {
		start[id] = size
		size += len(g.nodes[id].body)
	}
	tracer().Debugf("resolved %d of %d table nodes into %d bytes", len(order), len(g.nodes), size)
	out := &Writer{buf: make([]byte, 0, size)}
	for _, id := range order {
		node := g.nodes[id]
		base := out.Len()
		out.Write(node.body)
		for _, m := range node.markers {
			child := canon[m.target]
			dist := start[child] - start[id]
			assertf(dist > 0, "child %d placed before parent %d", child, id)
			if m.width == Width16 && dist > math.MaxUint16 || int64(dist) > math.MaxUint32 {
				return nil, codecError(ErrWidthOverflow, "offset graph", base+m.pos,
					"distance %d from node %d to node %d does not fit into %d bytes", dist, id, child, m.width)
			}
			out.Patch(base+m.pos, m.width, uint32(dist))
		}
	}
	return out.buf, nil
}

// checkAcyclic runs a depth-first traversal and fails on any edge back to a node
// which is still active, i.e., an ancestor on the current path.
func (g *Graph) checkAcyclic(root NodeID) error {
	const (
		unvisited = iota
		active
		done
	)
	state := make([]uint8, len(g.nodes))
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		assertf(g.nodes[id].defined, "node %d declared but never defined", id)
		state[id] = active
		for _, m := range g.nodes[id].markers {
			g.check(m.target)
			switch state[m.target] {
			case active:
				return codecError(ErrCyclicGraph, "offset graph", -1,
					"node %d links back to active node %d", id, m.target)
			case unvisited:
				if err := visit(m.target); err != nil {
					return err
				}
			}
		}
		state[id] = done
		return nil
	}
	return visit(root)
}

// placement returns the layout order of all nodes reachable from root: the
// reverse post-order of a depth-first traversal visiting children right to left.
// For a tree this is the pre-order with children in field order; for a DAG it is
// a topological order, i.e., every node comes after all of its parents.
func (g *Graph) placement(root NodeID, canon []NodeID) []NodeID {
	visited := make([]bool, len(g.nodes))
	post := make([]NodeID, 0, len(g.nodes))
	var visit func(id NodeID)
	visit = func(id NodeID) {
		visited[id] = true
		markers := g.nodes[id].markers
		for i := len(markers) - 1; i >= 0; i-- {
			if child := canon[markers[i].target]; !visited[child] {
				visit(child)
			}
		}
		post = append(post, id)
	}
	visit(root)
	slices.Reverse(post)
	return post
}

func (g *Graph) identity() []NodeID {
	canon := make([]NodeID, len(g.nodes))
	for i := range canon {
		canon[i] = NodeID(i)
	}
	return canon
}

// canonicalize maps every node reachable from root to a representative with
// identical content. Content is the body plus, for every offset field, its
// position, width and the representative of its target, so nodes are merged only
// if their whole sub-graphs serialize identically. Nodes are processed in
// post-order and the first node seen with a given content becomes its
// representative, which makes the result deterministic for a given graph.
func (g *Graph) canonicalize(root NodeID) []NodeID {
	canon := g.identity()
	seen := make(map[string]NodeID)
	visited := make([]bool, len(g.nodes))
	var key []byte
	var visit func(id NodeID)
	visit = func(id NodeID) {
		visited[id] = true
		node := g.nodes[id]
		for _, m := range node.markers {
			if !visited[m.target] {
				visit(m.target)
			}
		}
		key = key[:0]
		key = binary.BigEndian.AppendUint32(key, uint32(len(node.body)))
		key = append(key, node.body...)
		for _, m := range node.markers {
			key = binary.BigEndian.AppendUint32(key, uint32(m.pos))
			key = append(key, byte(m.width))
			key = binary.BigEndian.AppendUint32(key, uint32(canon[m.target]))
		}
		if rep, ok := seen[string(key)]; ok {
			canon[id] = rep
			return
		}
		seen[string(key)] = id
	}
	visit(root)
	if n := len(seen); n < countTrue(visited) {
		tracer().Debugf("sharing merged %d table nodes", countTrue(visited)-n)
	}
	return canon
}

func countTrue(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

// String returns a short description of the arena, for debugging.
func (g *Graph) String() string {
	links := 0
	for _, n := range g.nodes {
		links += len(n.markers)
	}
	return fmt.Sprintf("Graph{nodes=%d, links=%d}", len(g.nodes), links)
}
