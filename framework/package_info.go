// Package framework contains shared low-level types used by the mock engine
// subpackages. The base package holds source-location capture; the actual
// machinery is in the subpackages:
//
// 1. expect holds the queues of return values, parameter checks, and call
// expectations that test code declares before invoking code under test.
//
// 2. memguard is a guard-banded allocator that detects buffer overruns at
// free time and leaked blocks at phase boundaries.
//
// 3. mocktest is the execution kernel: a per-test context similar to Go's
// testing.T, a group runner with filtering, and the report loggers.
//
// 4. matchers provides the self-describing predicates used both for queued
// parameter checks and for the immediate assertion primitives.
package framework
