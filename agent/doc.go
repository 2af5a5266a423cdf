// Package agent implements role-specialized analysis over the procurement
// index.
//
// An Agent retrieves the most relevant row documents for a query and asks
// the language model to answer as one of six built-in procurement roles.
// The Analyzer fans a batch of role tasks out over a small worker pool and
// collects the answers keyed by role, isolating per-task failures so one
// bad generation never sinks the batch.
package agent
