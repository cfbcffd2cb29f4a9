package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/fwojciec/crawldoc"
)

// Ensure GraphWriter implements crawldoc.GraphWriter at compile time.
var _ crawldoc.GraphWriter = (*GraphWriter)(nil)

// GraphWriter writes a crawl graph as JSON and, optionally, as GraphML
// for graph visualization tools.
type GraphWriter struct {
	jsonPath    string
	graphmlPath string
}

// NewGraphWriter creates a GraphWriter that writes JSON to jsonPath.
// When graphmlPath is non-empty a GraphML rendition is written there too.
func NewGraphWriter(jsonPath, graphmlPath string) *GraphWriter {
	return &GraphWriter{jsonPath: jsonPath, graphmlPath: graphmlPath}
}

// WriteGraph persists the graph. The JSON shape is
// {"nodes": [{"url": ...}], "edges": [{"source": ..., "target": ...}]}.
func (w *GraphWriter) WriteGraph(ctx context.Context, graph *crawldoc.Graph) error {
	if err := os.MkdirAll(filepath.Dir(w.jsonPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(graph.Export(), "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(w.jsonPath, data, 0644); err != nil {
		return err
	}

	if w.graphmlPath == "" {
		return nil
	}
	return w.writeGraphML(graph)
}

// writeGraphML renders the graph as a GraphML document. Node ids are
// synthetic ("n0", "n1", ...) with the URL carried as a data attribute,
// which keeps the ids valid XML regardless of URL contents.
func (w *GraphWriter) writeGraphML(graph *crawldoc.Graph) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("graphml")
	root.CreateAttr("xmlns", "http://graphml.graphdrawing.org/xmlns")

	key := root.CreateElement("key")
	key.CreateAttr("id", "url")
	key.CreateAttr("for", "node")
	key.CreateAttr("attr.name", "url")
	key.CreateAttr("attr.type", "string")

	g := root.CreateElement("graph")
	g.CreateAttr("edgedefault", "directed")

	nodes := graph.Nodes()
	ids := make(map[string]string, len(nodes))
	for i, url := range nodes {
		id := fmt.Sprintf("n%d", i)
		ids[url] = id

		node := g.CreateElement("node")
		node.CreateAttr("id", id)
		data := node.CreateElement("data")
		data.CreateAttr("key", "url")
		data.SetText(url)
	}

	for _, e := range graph.Edges() {
		edge := g.CreateElement("edge")
		edge.CreateAttr("source", ids[e.Source])
		edge.CreateAttr("target", ids[e.Target])
	}

	doc.Indent(2)
	f, err := os.Create(w.graphmlPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}
