package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/models"
)

// MemoryStore is the injected fallback cache used when the durable store is
// unreachable. Entries expire after a TTL and are swept periodically, so the
// degrade path cannot grow without bound.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]memoryEntry // keyed by session id, newest report wins
	ttl     time.Duration
	logger  *zap.Logger
	done    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	report    *models.AnalysisReport
	expiresAt time.Time
}

// DefaultTTL keeps fallback reports around long enough for a user to fetch
// their result, without turning the process into a leak.
const DefaultTTL = 24 * time.Hour

const sweepInterval = 10 * time.Minute

// NewMemoryStore creates the fallback store and starts its sweeper.
func NewMemoryStore(ttl time.Duration, logger *zap.Logger) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &MemoryStore{
		reports: make(map[string]memoryEntry),
		ttl:     ttl,
		logger:  logger,
		done:    make(chan struct{}),
	}

	go s.sweeper()
	return s
}

func (s *MemoryStore) sweeper() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.reports {
		if now.After(entry.expiresAt) {
			delete(s.reports, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("Swept expired fallback reports", zap.Int("removed", removed))
	}
}

// SaveReport stores the report under its session id.
func (s *MemoryStore) SaveReport(_ context.Context, report *models.AnalysisReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[report.SessionID] = memoryEntry{
		report:    report,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// GetReport returns the report for a session, if present and unexpired.
func (s *MemoryStore) GetReport(_ context.Context, sessionID string) (*models.AnalysisReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.reports[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.report, nil
}

// ListReports returns the unexpired reports, newest first.
func (s *MemoryStore) ListReports(_ context.Context, limit int) ([]*models.AnalysisReport, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	reports := make([]*models.AnalysisReport, 0, len(s.reports))
	for _, entry := range s.reports {
		if now.After(entry.expiresAt) {
			continue
		}
		reports = append(reports, entry.report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].AnalyzedAt.After(reports[j].AnalyzedAt)
	})

	if len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// GetStats summarizes the unexpired reports.
func (s *MemoryStore) GetStats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByClass: make(map[string]int)}
	now := time.Now()

	var sum float64
	for _, entry := range s.reports {
		if now.After(entry.expiresAt) {
			continue
		}
		stats.Total++
		stats.ByClass[entry.report.Classification]++
		sum += entry.report.OverallScore
	}

	if stats.Total > 0 {
		stats.AverageScore = sum / float64(stats.Total)
	}
	return stats, nil
}

// Close stops the sweeper.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
