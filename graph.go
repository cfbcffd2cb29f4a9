package crawldoc

import (
	"context"
	"sort"
)

// Edge is a directed link between two pages, identified by exact URL string.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Node is a page in the crawl graph.
type Node struct {
	URL string `json:"url"`
}

// Graph is a directed graph of visited and referenced URLs. Nodes are
// identified by exact URL string (no normalization of trailing slashes or
// query order); duplicate edges collapse to at most one per ordered pair.
// Insertion order of nodes and edges is preserved.
//
// Graph is not safe for concurrent use; callers synchronize externally.
type Graph struct {
	nodes     []string
	nodeIndex map[string]int
	edges     []Edge
	edgeSeen  map[Edge]struct{}
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]int),
		edgeSeen:  make(map[Edge]struct{}),
	}
}

// AddNode adds a URL as a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(url string) {
	if _, ok := g.nodeIndex[url]; ok {
		return
	}
	g.nodeIndex[url] = len(g.nodes)
	g.nodes = append(g.nodes, url)
}

// AddEdge adds a directed edge, creating missing endpoint nodes.
// Duplicate edges collapse.
func (g *Graph) AddEdge(source, target string) {
	g.AddNode(source)
	g.AddNode(target)
	e := Edge{Source: source, Target: target}
	if _, ok := g.edgeSeen[e]; ok {
		return
	}
	g.edgeSeen[e] = struct{}{}
	g.edges = append(g.edges, e)
}

// HasNode reports whether the URL is present in the graph.
func (g *Graph) HasNode(url string) bool {
	_, ok := g.nodeIndex[url]
	return ok
}

// Nodes returns all node URLs in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// DegreeEntry pairs a URL with a degree count.
type DegreeEntry struct {
	URL    string
	Degree int
}

// GraphStats summarizes a crawl graph.
type GraphStats struct {
	Nodes        int
	Edges        int
	AvgInDegree  float64
	AvgOutDegree float64
	TopInbound   []DegreeEntry
	TopOutbound  []DegreeEntry
}

// Stats computes summary statistics for the graph. The top-degree lists
// contain at most n entries, ordered by degree descending with insertion
// order breaking ties.
func (g *Graph) Stats(n int) GraphStats {
	stats := GraphStats{
		Nodes: len(g.nodes),
		Edges: len(g.edges),
	}
	if len(g.nodes) == 0 {
		return stats
	}

	in := make(map[string]int, len(g.nodes))
	out := make(map[string]int, len(g.nodes))
	for _, e := range g.edges {
		out[e.Source]++
		in[e.Target]++
	}

	stats.AvgInDegree = float64(len(g.edges)) / float64(len(g.nodes))
	stats.AvgOutDegree = stats.AvgInDegree

	stats.TopInbound = topDegrees(g.nodes, in, n)
	stats.TopOutbound = topDegrees(g.nodes, out, n)
	return stats
}

func topDegrees(nodes []string, degrees map[string]int, n int) []DegreeEntry {
	entries := make([]DegreeEntry, 0, len(nodes))
	for _, url := range nodes {
		entries = append(entries, DegreeEntry{URL: url, Degree: degrees[url]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Degree > entries[j].Degree
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// GraphExport is the serialization shape for a crawl graph.
type GraphExport struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Export returns the graph in its serialization shape.
func (g *Graph) Export() GraphExport {
	nodes := make([]Node, len(g.nodes))
	for i, url := range g.nodes {
		nodes[i] = Node{URL: url}
	}
	return GraphExport{Nodes: nodes, Edges: g.Edges()}
}

// GraphWriter persists a crawl graph.
type GraphWriter interface {
	WriteGraph(ctx context.Context, graph *Graph) error
}
