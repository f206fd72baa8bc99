package stage

import (
	"errors"
	"fmt"
	"sort"

	"github.com/heimdalr/dag"
)

// ErrUnknownStage is returned when a stage is not part of the pipeline graph
var ErrUnknownStage = errors.New("stage is not part of the pipeline graph")

// pipelineOrder is the order stages run in when nothing is skipped
//
//nolint:gochecknoglobals // Fixed ordering table
var pipelineOrder = []Stage{Setup, Convert, Cluster, Validate, Annotate, Pair, Summary, Overlay}

// pipelineEdges lists upstream → downstream stage dependencies. Overlay is
// standalone and has no edges.
//
//nolint:gochecknoglobals // Fixed dependency table
var pipelineEdges = [][2]Stage{
	{Setup, Convert},
	{Convert, Cluster},
	{Cluster, Validate},
	{Validate, Annotate},
	{Annotate, Pair},
	{Pair, Summary},
}

// PipelineGraph is the dependency DAG between pipeline stages
type PipelineGraph struct {
	dag *dag.DAG
}

// NewPipelineGraph builds the stage dependency graph
func NewPipelineGraph() (*PipelineGraph, error) {
	d := dag.NewDAG()

	for _, s := range pipelineOrder {
		if err := d.AddVertexByID(s.String(), s.String()); err != nil {
			return nil, fmt.Errorf("failed to add stage %s: %w", s, err)
		}
	}

	for _, edge := range pipelineEdges {
		if err := d.AddEdge(edge[0].String(), edge[1].String()); err != nil {
			return nil, fmt.Errorf("invalid stage dependency %s → %s: %w", edge[0], edge[1], err)
		}
	}

	return &PipelineGraph{dag: d}, nil
}

// Upstream returns every stage that must run before s, in pipeline order
func (g *PipelineGraph) Upstream(s Stage) ([]Stage, error) {
	ancestors, err := g.dag.GetAncestors(s.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, s)
	}

	stages := make([]Stage, 0, len(ancestors))
	for id := range ancestors {
		stages = append(stages, Stage(id))
	}
	sortByPipeline(stages)

	return stages, nil
}

// Downstream returns every stage that depends on s, in pipeline order
func (g *PipelineGraph) Downstream(s Stage) ([]Stage, error) {
	descendants, err := g.dag.GetDescendants(s.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, s)
	}

	stages := make([]Stage, 0, len(descendants))
	for id := range descendants {
		stages = append(stages, Stage(id))
	}
	sortByPipeline(stages)

	return stages, nil
}

// Plan returns the stages required to reach target in pipeline order, leaving
// out skipped upstream stages. The target itself is always included.
func (g *PipelineGraph) Plan(target Stage, skipped ...Stage) ([]Stage, error) {
	upstream, err := g.Upstream(target)
	if err != nil {
		return nil, err
	}

	plan := make([]Stage, 0, len(upstream)+1)
	for _, s := range upstream {
		if s.In(skipped...) {
			continue
		}
		plan = append(plan, s)
	}

	return append(plan, target), nil
}

func sortByPipeline(stages []Stage) {
	rank := make(map[Stage]int, len(pipelineOrder))
	for i, s := range pipelineOrder {
		rank[s] = i
	}

	sort.Slice(stages, func(i, j int) bool {
		return rank[stages[i]] < rank[stages[j]]
	})
}
