package skin

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/binzume/weightmirror/geom"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSourceSuffix         = "_R"
	DefaultTargetSuffix         = "_L"
	DefaultEpsilon      float64 = 0.0001
)

var (
	ErrEmptySuffix        = errors.New("empty bone suffix")
	ErrSameSuffix         = errors.New("source and target suffix are the same")
	ErrInvalidAxis        = errors.New("invalid mirror axis")
	ErrInvalidEpsilon     = errors.New("invalid distance threshold")
	ErrMissingTargetGroup = errors.New("missing target group")
)

type MirrorOption struct {
	SourceSuffix string
	TargetSuffix string
	Axis         geom.Axis
	Epsilon      float64

	// Workers > 1 mirrors bone pairs in parallel.
	Workers int
}

func DefaultMirrorOption() *MirrorOption {
	return &MirrorOption{
		SourceSuffix: DefaultSourceSuffix,
		TargetSuffix: DefaultTargetSuffix,
		Axis:         geom.AxisX,
		Epsilon:      DefaultEpsilon,
	}
}

// Validate reports configurations that must be rejected before any weight is touched.
func (o *MirrorOption) Validate() error {
	if o.SourceSuffix == "" || o.TargetSuffix == "" {
		return fmt.Errorf("source %q, target %q: %w", o.SourceSuffix, o.TargetSuffix, ErrEmptySuffix)
	}
	if o.SourceSuffix == o.TargetSuffix {
		return fmt.Errorf("%q: %w", o.SourceSuffix, ErrSameSuffix)
	}
	return validateMirror(o.Axis, o.Epsilon)
}

func validateMirror(axis geom.Axis, epsilon float64) error {
	if !axis.Valid() {
		return fmt.Errorf("%v: %w", axis, ErrInvalidAxis)
	}
	if math.IsNaN(epsilon) || epsilon < 0 {
		return fmt.Errorf("%v: %w", epsilon, ErrInvalidEpsilon)
	}
	return nil
}

type PairStatus int

const (
	PairOK PairStatus = iota
	PairSkippedNoSource
	PairFailedNoTarget
)

func (s PairStatus) String() string {
	switch s {
	case PairOK:
		return "ok"
	case PairSkippedNoSource:
		return "skipped-no-source"
	case PairFailedNoTarget:
		return "failed-no-target"
	}
	return fmt.Sprintf("PairStatus(%d)", int(s))
}

type PairResult struct {
	Pair BonePair
	// Committed is true when the target group was replaced.
	Committed        bool
	VerticesMirrored int
	// VerticesSkipped counts source vertices without a counterpart within epsilon.
	VerticesSkipped int
	Status          PairStatus
	Err             error
}

type Report struct {
	Mesh      string
	Results   []*PairResult
	Unmatched []string
}

// Committed returns the results whose target group was replaced.
func (r *Report) Committed() []*PairResult {
	var committed []*PairResult
	for _, res := range r.Results {
		if res.Committed {
			committed = append(committed, res)
		}
	}
	return committed
}

func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == PairFailedNoTarget {
			n++
		}
	}
	return n
}

type WeightMirror struct {
	MirrorOption
}

func NewWeightMirror(option *MirrorOption) *WeightMirror {
	if option == nil {
		option = DefaultMirrorOption()
	}
	return &WeightMirror{MirrorOption: *option}
}

// Mirror pairs boneNames by suffix and mirrors the weights of every pair in mesh.
func (m *WeightMirror) Mirror(mesh *Mesh, boneNames []string) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	pairs, unmatched := matchBones(boneNames, m.SourceSuffix, m.TargetSuffix)
	for _, name := range unmatched {
		log.Println("Mirror bone not found:", name)
	}
	report := m.mirrorPairs(mesh, pairs)
	report.Unmatched = unmatched
	return report, nil
}

// MirrorWeights replaces the target group of each pair with the mirrored source weights.
func MirrorWeights(mesh *Mesh, pairs []BonePair, axis geom.Axis, epsilon float64) (*Report, error) {
	if err := validateMirror(axis, epsilon); err != nil {
		return nil, err
	}
	m := &WeightMirror{MirrorOption{Axis: axis, Epsilon: epsilon}}
	return m.mirrorPairs(mesh, pairs), nil
}

type pairJob struct {
	result *PairResult
	source map[int]float32
	target *VertexGroup
}

func (m *WeightMirror) mirrorPairs(mesh *Mesh, pairs []BonePair) *Report {
	report := &Report{Mesh: mesh.Name}
	index := NewMirrorIndex(mesh.Vertices, m.Axis, m.Epsilon)

	// Source tables are captured before anything is committed.
	// Commits swap tables rather than modifying them, so captured tables stay intact.
	var jobs []*pairJob
	for _, pair := range pairs {
		res := &PairResult{Pair: pair}
		report.Results = append(report.Results, res)
		source := mesh.Group(pair.Source)
		if source == nil {
			res.Status = PairSkippedNoSource
			continue
		}
		target := mesh.Group(pair.Target)
		if target == nil {
			res.Status = PairFailedNoTarget
			res.Err = fmt.Errorf("%v: %w", pair.Target, ErrMissingTargetGroup)
			log.Println("Target group not found:", pair.Target, "mesh:", mesh.Name)
			continue
		}
		jobs = append(jobs, &pairJob{result: res, source: source.Weights, target: target})
	}

	if m.Workers <= 1 {
		for _, job := range jobs {
			staging := m.stage(mesh, index, job)
			job.target.replace(staging)
			job.result.Committed = true
		}
		return report
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(m.Workers)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			staging := m.stage(mesh, index, job)
			mu.Lock()
			job.target.replace(staging)
			job.result.Committed = true
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return report
}

// stage builds the mirrored weight table of one pair without touching the mesh.
func (m *WeightMirror) stage(mesh *Mesh, index *MirrorIndex, job *pairJob) map[int]float32 {
	staging := map[int]float32{}
	for _, vi := range sortedIndices(job.source) {
		w := job.source[vi]
		if isZeroWeight(w) {
			continue
		}
		v := mesh.Vertex(vi)
		if v == nil {
			job.result.VerticesSkipped++
			continue
		}
		mi, ok := index.FindMirror(v.Pos)
		if !ok {
			job.result.VerticesSkipped++
			continue
		}
		staging[mi] = clampWeight(w)
		job.result.VerticesMirrored++
	}
	return staging
}
