// Package services defines the shared error taxonomy for pipeline stages.
//
// Stage code wraps failures with a sentinel marker so the workflow runner can
// classify them into terminal job statuses without string matching.
package services
