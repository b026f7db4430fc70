package services

import (
	"sort"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// BOMEdge is one parent->child edge of the BOM graph with its usage factors.
type BOMEdge struct {
	ChildID  string
	Quantity float64
	LossPct  float64
}

// BOMGraph is the adjacency representation of the active BOM lines.
// Traversals operate on product ids only; no object graph is required.
type BOMGraph struct {
	adjacency map[string][]BOMEdge
	children  map[string]bool
	nodes     map[string]bool
}

// NewBOMGraph builds the parent->child adjacency from BOM lines. Edge order
// per parent follows child id so traversals are deterministic.
func NewBOMGraph(lines []entities.BOMLine) *BOMGraph {
	g := &BOMGraph{
		adjacency: make(map[string][]BOMEdge),
		children:  make(map[string]bool),
		nodes:     make(map[string]bool),
	}
	for _, line := range lines {
		g.adjacency[line.ParentID] = append(g.adjacency[line.ParentID], BOMEdge{
			ChildID:  line.ChildID,
			Quantity: line.Quantity,
			LossPct:  line.LossPct,
		})
		g.children[line.ChildID] = true
		g.nodes[line.ParentID] = true
		g.nodes[line.ChildID] = true
	}
	for parent := range g.adjacency {
		edges := g.adjacency[parent]
		sort.Slice(edges, func(i, j int) bool { return edges[i].ChildID < edges[j].ChildID })
	}
	return g
}

// Edges returns the outgoing edges of a product.
func (g *BOMGraph) Edges(productID string) []BOMEdge {
	return g.adjacency[productID]
}

// IsChild reports whether the product appears on the child side of any line.
func (g *BOMGraph) IsChild(productID string) bool {
	return g.children[productID]
}

// Nodes returns every product id referenced by the graph, sorted.
func (g *BOMGraph) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Roots returns the explosion roots: every finished product plus any parent
// that is not itself a child of another line. finishedIDs may include
// products absent from the graph; those still act as level-0 roots.
func (g *BOMGraph) Roots(finishedIDs []string) []string {
	seen := make(map[string]bool)
	var roots []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			roots = append(roots, id)
		}
	}
	for _, id := range finishedIDs {
		add(id)
	}
	for parent := range g.adjacency {
		if !g.children[parent] {
			add(parent)
		}
	}
	sort.Strings(roots)
	return roots
}

// dfs colors for cycle detection.
const (
	colorWhite = iota
	colorGrey
	colorBlack
)

// DetectCycle runs a three-color DFS over the graph and returns the first
// cycle path found (closed: the first node repeats at the end), or nil when
// the graph is acyclic. A self-loop counts as a cycle.
func (g *BOMGraph) DetectCycle() []string {
	color := make(map[string]int, len(g.nodes))
	nodes := g.Nodes()
	for _, start := range nodes {
		if color[start] != colorWhite {
			continue
		}
		if cycle := g.dfsCycle(start, color, []string{}); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *BOMGraph) dfsCycle(current string, color map[string]int, path []string) []string {
	color[current] = colorGrey
	path = append(path, current)
	for _, edge := range g.adjacency[current] {
		switch color[edge.ChildID] {
		case colorWhite:
			if cycle := g.dfsCycle(edge.ChildID, color, path); cycle != nil {
				return cycle
			}
		case colorGrey:
			// Back edge: extract the cycle from the grey path and close it.
			start := 0
			for i, id := range path {
				if id == edge.ChildID {
					start = i
					break
				}
			}
			cycle := append([]string{}, path[start:]...)
			return append(cycle, edge.ChildID)
		}
	}
	color[current] = colorBlack
	return nil
}

// LowLevelCodes assigns each product the maximum depth at which it appears
// under any root (invariant: one code per product, max over all paths).
// The graph must be acyclic.
func (g *BOMGraph) LowLevelCodes(roots []string) map[string]int {
	codes := make(map[string]int)
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		if existing, ok := codes[id]; !ok || depth > existing {
			codes[id] = depth
		}
		for _, edge := range g.adjacency[id] {
			visit(edge.ChildID, depth+1)
		}
	}
	for _, root := range roots {
		visit(root, 0)
	}
	return codes
}

// MaxLevel returns the deepest low-level code, or 0 for an empty map.
func MaxLevel(codes map[string]int) int {
	max := 0
	for _, level := range codes {
		if level > max {
			max = level
		}
	}
	return max
}
