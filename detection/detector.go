// Package detection finds duplicate incident reports and groups a report
// pool into incident clusters. All operations are pure queries over
// caller-supplied snapshots; persisting verdicts, similarity links or
// clusters is the caller's responsibility.
package detection

import (
	"sort"
	"time"

	"go-lifeline/similarity"
	"go-lifeline/types"
)

// Detector runs duplicate detection and clustering with a fixed similarity
// configuration. It holds no mutable state and is safe for concurrent use.
type Detector struct {
	cfg similarity.Config
}

func NewDetector(cfg similarity.Config) *Detector {
	return &Detector{cfg: cfg}
}

// FindSimilar scores the target against every other report in the pool and
// returns the results that clear the similarity threshold with at least
// MinReasons corroborating signals, sorted by descending score. A single
// weak signal never qualifies a report on its own.
func (d *Detector) FindSimilar(target types.IncidentReport, pool []types.IncidentReport) []types.SimilarityResult {
	var results []types.SimilarityResult

	for _, candidate := range pool {
		if candidate.ID == target.ID {
			continue
		}
		result := similarity.Score(d.cfg, target, candidate)
		if result.Score >= d.cfg.SimilarThreshold && len(result.Reasons) >= d.cfg.MinReasons {
			results = append(results, result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ReportID < results[j].ReportID
	})

	return results
}

// DetectDuplicate reports whether newReport looks like a duplicate of an
// existing report in the pool. The verdict is advisory; linking or merging
// records is up to the caller.
func (d *Detector) DetectDuplicate(newReport types.IncidentReport, pool []types.IncidentReport) types.DuplicateVerdict {
	matches := d.FindSimilar(newReport, pool)
	if len(matches) == 0 {
		return types.DuplicateVerdict{}
	}

	top := matches[0]
	verdict := types.DuplicateVerdict{
		Confidence: top.Score,
		Reasons:    top.Reasons,
	}
	if top.Score >= d.cfg.DuplicateThreshold {
		verdict.IsDuplicate = true
		verdict.DuplicateOfID = top.ReportID
	}

	return verdict
}

// ClusterReports groups the pool into incident clusters. Reports are
// processed in ascending creation order and each unassigned report seeds a
// cluster from its qualifying matches; singletons are dropped since they
// carry no clustering information. The primary is always the
// earliest-created member, so repeated runs over an unchanged pool produce
// identical output.
func (d *Detector) ClusterReports(pool []types.IncidentReport) []types.Cluster {
	ordered := make([]types.IncidentReport, len(pool))
	copy(ordered, pool)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	assigned := make(map[string]bool)
	var clusters []types.Cluster

	for _, seed := range ordered {
		if assigned[seed.ID] {
			continue
		}
		assigned[seed.ID] = true

		matches := d.FindSimilar(seed, ordered)

		memberIDs := []string{seed.ID}
		var scoreSum float64
		var reasons []string
		for _, match := range matches {
			if assigned[match.ReportID] {
				continue
			}
			assigned[match.ReportID] = true
			memberIDs = append(memberIDs, match.ReportID)
			scoreSum += match.Score
			reasons = appendUnique(reasons, match.Reasons)
		}

		// a seed with no qualifying members is not a cluster
		if len(memberIDs) < 2 {
			continue
		}

		clusters = append(clusters, types.Cluster{
			ClusterID:       seed.ID,
			MemberIDs:       memberIDs,
			PrimaryReportID: seed.ID,
			Confidence:      scoreSum / float64(len(memberIDs)-1),
			Reasons:         reasons,
			EarliestReport:  seed.CreatedAt,
		})
	}

	return clusters
}

// MergeClusters reconciles two independently discovered clusters into one:
// member union, the earlier of the two primaries, averaged confidence and
// the union of reasons.
func MergeClusters(c1, c2 types.Cluster) types.Cluster {
	earlier, later := c1, c2
	if laterStarted(c1, c2) {
		earlier, later = c2, c1
	}

	merged := types.Cluster{
		ClusterID:       earlier.ClusterID,
		PrimaryReportID: earlier.PrimaryReportID,
		Confidence:      (c1.Confidence + c2.Confidence) / 2,
		EarliestReport:  earlier.EarliestReport,
	}
	merged.MemberIDs = appendUnique(earlier.MemberIDs, later.MemberIDs)
	merged.Reasons = appendUnique(earlier.Reasons, later.Reasons)

	return merged
}

// laterStarted reports whether c1's primary was created after c2's, with
// the cluster id as a deterministic tie-break.
func laterStarted(c1, c2 types.Cluster) bool {
	if !c1.EarliestReport.Equal(c2.EarliestReport) {
		return c1.EarliestReport.After(c2.EarliestReport)
	}
	return c1.ClusterID > c2.ClusterID
}

func appendUnique(dst []string, src []string) []string {
	seen := make(map[string]bool, len(dst))
	out := make([]string, 0, len(dst)+len(src))
	for _, s := range dst {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range src {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// PoolWindow trims a pool to reports created within the given window
// ending at the newest report. Callers bound clustering cost by limiting
// both count and recency of the pool they pass in.
func PoolWindow(pool []types.IncidentReport, window time.Duration) []types.IncidentReport {
	if len(pool) == 0 || window <= 0 {
		return pool
	}

	newest := pool[0].CreatedAt
	for _, r := range pool[1:] {
		if r.CreatedAt.After(newest) {
			newest = r.CreatedAt
		}
	}

	cutoff := newest.Add(-window)
	var trimmed []types.IncidentReport
	for _, r := range pool {
		if !r.CreatedAt.Before(cutoff) {
			trimmed = append(trimmed, r)
		}
	}
	return trimmed
}
