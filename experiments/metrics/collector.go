package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration time.Duration
	Nodes    int
	CacheHit bool
}

type MoveMetric struct {
	Step   int
	Player string // Mark of the mover
	Agent  string
	Action int
	SearchMetric
}

type GameMetric struct {
	Agent1     string // Plays X
	Agent2     string // Plays O
	Winner     string // Mark of the winner, "" on a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector gathers search statistics for a single move decision.
type Collector interface {
	Start()
	AddNode()
	AddCacheHit()
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	nodes     atomic.Int64
	cacheHit  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.cacheHit.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHit.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		CacheHit: m.cacheHit.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCacheHit()           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
