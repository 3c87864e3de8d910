// Package mocktest is the execution kernel of the mock engine. A Group of
// Tests runs through a Runner; each test gets a fresh T carrying its
// expectation stores and guarded allocator, and runs in three protected
// phases (setup, body, teardown). Assertion failures, unmet expectations,
// leaked or corrupted memory, and runtime crashes are all converted into
// per-test results, aggregated into a Summary, and reported through one or
// more TestLogger implementations (console, TAP, subunit, JUnit XML).
//
// The simplest entry point is RunGroup, which configures itself from
// MOCKHARNESS_* environment variables:
//
//	func main() {
//		summary := mocktest.RunGroup(mocktest.Group{
//			Name: "widget",
//			Tests: []mocktest.Test{
//				{Name: "frobs once", Body: testFrobsOnce},
//			},
//		})
//		os.Exit(summary.ExitCode())
//	}
package mocktest
