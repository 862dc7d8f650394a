// Package pipeline orchestrates the jobs: asset discovery, sequential
// per-asset processing with error containment, in-place replacement with
// rollback, and batch summary reporting.
//
// Batch jobs never abort on a single asset's failure: per-asset errors are
// logged and counted, and the final summary reports processed, skipped, and
// failed totals. Configuration errors, by contrast, abort before any
// external process is spawned.
package pipeline
