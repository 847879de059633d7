package engine

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"ed-tradepair/internal/eddb"
)

// Scanner ranks single-hop trade pairs between two station collections.
// The zero value scans sequentially with default limits; fields may be set
// before the first scan and must not change afterwards.
type Scanner struct {
	// MaxRoutes is the K of the top-K ranking (DefaultMaxRoutes if 0).
	MaxRoutes int
	// Workers is the parallel worker count (one per CPU if 0).
	Workers int
	// ParallelThreshold is the pair count above which FindRoutes goes
	// parallel (DefaultParallelThreshold if 0).
	ParallelThreshold int
	// KeepUnprofitable keeps pairs without a profitable commodity in the
	// working list as zero-profit, commodity-less candidates.
	KeepUnprofitable bool
	// OnProgress, when set, is invoked after each source station completes
	// during a sequential scan.
	OnProgress func(Progress)
}

// NewScanner creates a Scanner with default options.
func NewScanner() *Scanner {
	return &Scanner{
		MaxRoutes:         DefaultMaxRoutes,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// FindRoutes scans sources against destinations and returns the top trade
// candidates, choosing the parallel path when the pair count exceeds the
// threshold and more than one worker is available.
func (s *Scanner) FindRoutes(sources, destinations []*eddb.Station, limit int) ([]RouteCandidate, error) {
	pairs := len(sources) * len(destinations)
	threshold := s.ParallelThreshold
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	if pairs > threshold && s.workerCount() > 1 {
		return s.ParallelScan(sources, destinations, limit)
	}
	return s.Scan(sources, destinations, limit), nil
}

// Scan evaluates every source×destination pair sequentially and returns at
// most limit candidates sorted by per-unit profit descending. Ties keep
// discovery order. After each source station the working list is re-sorted
// and truncated so peak memory stays proportional to the limit rather than
// the full cross product.
func (s *Scanner) Scan(sources, destinations []*eddb.Station, limit int) []RouteCandidate {
	limit = EffectiveLimit(limit, DefaultMaxRoutes)
	start := time.Now()

	working := []RouteCandidate{}
	for i, src := range sources {
		working = s.scanSource(working, src, destinations)
		working = topRoutes(working, limit)
		s.reportProgress(i+1, len(sources), start)
	}
	return working
}

// ParallelScan partitions sources into contiguous chunks, scans each chunk
// against the full destination set on its own worker, and merges the partial
// top lists. Workers-1 chunks run on goroutines; the final chunk is computed
// inline by the caller so total worker usage equals the configured count.
// Any worker failure fails the whole call.
func (s *Scanner) ParallelScan(sources, destinations []*eddb.Station, limit int) ([]RouteCandidate, error) {
	limit = EffectiveLimit(limit, DefaultMaxRoutes)

	chunks := chunkStations(sources, s.workerCount())
	if len(chunks) == 1 {
		return s.scanChunk(chunks[0], destinations, limit), nil
	}

	partials := make([][]RouteCandidate, len(chunks))
	var g errgroup.Group
	for i := 0; i < len(chunks)-1; i++ {
		i := i
		g.Go(func() error {
			partials[i] = s.scanChunk(chunks[i], destinations, limit)
			return nil
		})
	}
	last := len(chunks) - 1
	partials[last] = s.scanChunk(chunks[last], destinations, limit)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel scan: %w", err)
	}

	// Concatenate in chunk order so equal-profit candidates keep the same
	// relative order the sequential scan would discover them in.
	var merged []RouteCandidate
	for _, p := range partials {
		merged = append(merged, p...)
	}
	return topRoutes(merged, limit), nil
}

// scanChunk is one worker's share of a parallel scan: a sequential scan of
// its sources against all destinations, without progress reporting.
func (s *Scanner) scanChunk(sources, destinations []*eddb.Station, limit int) []RouteCandidate {
	working := []RouteCandidate{}
	for _, src := range sources {
		working = s.scanSource(working, src, destinations)
		working = topRoutes(working, limit)
	}
	return working
}

// scanSource appends the candidates for one source station to the working list.
func (s *Scanner) scanSource(working []RouteCandidate, src *eddb.Station, destinations []*eddb.Station) []RouteCandidate {
	for _, dst := range destinations {
		if dst.ID == src.ID {
			continue
		}
		commodityID, profit := BestTrade(src, dst)
		if profit <= 0 && !s.KeepUnprofitable {
			continue
		}
		working = append(working, RouteCandidate{
			SourceStationID: src.ID,
			DestStationID:   dst.ID,
			CommodityID:     commodityID,
			ProfitPerUnit:   profit,
		})
	}
	return working
}

// topRoutes sorts the working list by profit descending, keeping discovery
// order among equal profits, and truncates it to k entries.
func topRoutes(list []RouteCandidate, k int) []RouteCandidate {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ProfitPerUnit > list[j].ProfitPerUnit
	})
	if len(list) > k {
		list = list[:k]
	}
	return list
}

// chunkStations splits stations into at most n contiguous chunks of
// floor(len/n) stations each, the last chunk absorbing the remainder.
func chunkStations(stations []*eddb.Station, n int) [][]*eddb.Station {
	if n > len(stations) {
		n = len(stations)
	}
	if n <= 1 {
		return [][]*eddb.Station{stations}
	}
	size := len(stations) / n
	chunks := make([][]*eddb.Station, 0, n)
	for i := 0; i < n-1; i++ {
		chunks = append(chunks, stations[i*size:(i+1)*size])
	}
	chunks = append(chunks, stations[(n-1)*size:])
	return chunks
}

func (s *Scanner) workerCount() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// reportProgress emits completion and a time-remaining estimate after a
// source station finishes. The estimate stays zero until there is history to
// extrapolate from; no division by zero on degenerate inputs.
func (s *Scanner) reportProgress(done, total int, start time.Time) {
	if s.OnProgress == nil {
		return
	}
	p := Progress{SourcesDone: done, SourcesTotal: total}
	if total > 0 {
		p.Percent = float64(done) / float64(total) * 100
	}
	if done > 0 && done < total {
		elapsed := time.Since(start)
		p.Remaining = time.Duration(float64(elapsed) / float64(done) * float64(total-done))
	}
	s.OnProgress(p)
}
