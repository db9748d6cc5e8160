// Package mcast holds the data model shared by the multicast schedule pipeline.
//
// # Reading Guide
//
// Start with these files:
//   - demand.go: Demand, the multicast request that flows through every stage
//   - topology.go: node id ranges and the simulation timeline
//   - errors.go: the fatal error taxonomy (preconditions, malformed records)
//
// # Architecture
//
// Pipeline stages live in sub-packages:
//   - mcast/workload/: random raw demand generation
//   - mcast/fstate/: routing snapshot loading (carry-forward diff files)
//   - mcast/split/: temporal-routing splitter producing atomic demands
//   - mcast/schedule/: schedule file writer and reader
//   - mcast/trace/: fork and emission records from a split run
//
// The pipeline is single-threaded and batch: generate, split, write. Any error
// aborts the run before the schedule file is written.
package mcast
