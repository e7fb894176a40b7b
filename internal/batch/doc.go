// Package batch defines the per-file job model for a conversion run.
//
// A Job tracks one source file through the pipeline lifecycle
// (pending -> planned -> encoding -> encoded -> validated, with skipped and
// failure terminals). Jobs live only for the duration of a run; there is no
// persistence and no identity beyond the source path.
package batch
