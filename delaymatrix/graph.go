// Package delaymatrix computes the minimum delay between every pair of nodes
// of a static topology graph. It is the coarse alternative to simulating the
// switch hierarchy packet by packet.
package delaymatrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gopkg.in/yaml.v3"
)

// ErrInvalidGraph is returned when a topology graph is malformed.
var ErrInvalidGraph = errors.New("invalid topology graph")

// A Link connects two nodes of a topology graph with a delay in seconds.
type Link struct {
	Src   int     `yaml:"src"`
	Dst   int     `yaml:"dst"`
	Delay float64 `yaml:"delay"`
}

// A Graph describes a topology by its number of nodes and its links. Unless
// Directed is set, every link can be traversed in both directions.
type Graph struct {
	NumNodes int    `yaml:"nodes"`
	Directed bool   `yaml:"directed"`
	Links    []Link `yaml:"links"`
}

// Validate checks that the graph has nodes and that every link connects two
// existing nodes with a finite, non-negative delay.
func (g Graph) Validate() error {
	if g.NumNodes <= 0 {
		return fmt.Errorf("%w: %d nodes", ErrInvalidGraph, g.NumNodes)
	}

	for i, l := range g.Links {
		if l.Src < 0 || l.Src >= g.NumNodes || l.Dst < 0 || l.Dst >= g.NumNodes {
			return fmt.Errorf("%w: link %d (%d -> %d) leaves the %d nodes",
				ErrInvalidGraph, i, l.Src, l.Dst, g.NumNodes)
		}

		if math.IsNaN(l.Delay) || math.IsInf(l.Delay, 0) {
			return fmt.Errorf("%w: link %d has non-finite delay %v",
				ErrInvalidGraph, i, l.Delay)
		}

		if l.Delay < 0 {
			return fmt.Errorf("%w: link %d has negative delay %v",
				ErrInvalidGraph, i, l.Delay)
		}
	}

	return nil
}

type weightedGraph interface {
	graph.Weighted
	graph.WeightedBuilder
}

// Weighted converts the graph to a gonum weighted graph whose node IDs are
// the node indexes. Self links are skipped and parallel links keep the
// lowest delay.
func (g Graph) Weighted() graph.Weighted {
	var wg weightedGraph
	if g.Directed {
		wg = simple.NewWeightedDirectedGraph(0, math.Inf(1))
	} else {
		wg = simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	}

	for i := 0; i < g.NumNodes; i++ {
		wg.AddNode(simple.Node(i))
	}

	for _, l := range g.Links {
		if l.Src == l.Dst {
			continue
		}

		w, ok := wg.Weight(int64(l.Src), int64(l.Dst))
		if ok && w <= l.Delay {
			continue
		}

		wg.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(l.Src),
			T: simple.Node(l.Dst),
			W: l.Delay,
		})
	}

	return wg
}

// LoadGraph reads a topology graph from a YAML file (.yaml, .yml) or from a
// CSV file (.csv).
func LoadGraph(path string) (Graph, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Graph{}, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return Graph{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yaml", ".yml":
		return ReadYAMLGraph(f)
	case ".csv":
		return ReadCSVGraph(f)
	default:
		return Graph{}, fmt.Errorf("unknown topology graph format %q", absPath)
	}
}

// ReadYAMLGraph decodes a graph written as
//
//	nodes: 3
//	directed: false
//	links:
//	  - {src: 0, dst: 1, delay: 2}
func ReadYAMLGraph(r io.Reader) (Graph, error) {
	var g Graph

	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decoding topology graph: %w", err)
	}

	return g, g.Validate()
}

// ReadCSVGraph decodes a graph from CSV records. The first record is
// "nodes,<count>[,directed]", every following record is "src,dst,delay".
func ReadCSVGraph(r io.Reader) (Graph, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return Graph{}, err
	}

	if len(records) == 0 || len(records[0]) < 2 || records[0][0] != "nodes" {
		return Graph{}, fmt.Errorf("%w: missing nodes header", ErrInvalidGraph)
	}

	g := Graph{}
	g.NumNodes, err = strconv.Atoi(records[0][1])
	if err != nil {
		return Graph{}, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}
	g.Directed = len(records[0]) > 2 && records[0][2] == "directed"

	for _, record := range records[1:] {
		link, err := parseLink(record)
		if err != nil {
			return Graph{}, err
		}

		g.Links = append(g.Links, link)
	}

	return g, g.Validate()
}

func parseLink(record []string) (Link, error) {
	if len(record) != 3 {
		return Link{}, fmt.Errorf("%w: link record %v needs 3 fields",
			ErrInvalidGraph, record)
	}

	src, err := strconv.Atoi(record[0])
	if err != nil {
		return Link{}, err
	}

	dst, err := strconv.Atoi(record[1])
	if err != nil {
		return Link{}, err
	}

	delay, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Link{}, err
	}

	return Link{Src: src, Dst: dst, Delay: delay}, nil
}
