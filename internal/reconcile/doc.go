// Package reconcile classifies raw markers into station records and
// diffs the resulting working set against configured baselines.
//
// This is the core of stationwatch: the classifier applies the
// fixed-width title heuristic that separates coded stations from
// temporary ones, and the engine accumulates classified stations,
// tracks which references are advertised, and computes the delta sets
// (status changes and no-longer-advertised stations).
//
// An Engine is constructed fresh per run and holds no state beyond it.
package reconcile
