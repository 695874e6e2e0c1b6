// Package syncer reconciles the local entity store with the planner server.
//
// Downloads run per entity kind in dependency order (projects, events,
// tasks, notes, documents). Each stage fetches the remote collection,
// matches records by external id, resolves parent references against the
// stages already committed and persists everything in one transaction
// before the next stage starts. A failed stage is logged and skipped.
//
// Uploads push one record, or all records of a kind, to the server. They
// are usually dispatched in the background and return a *Pending.
//
// Orchestrator guarantees that at most one full sync runs at a time per
// instance.
package syncer
