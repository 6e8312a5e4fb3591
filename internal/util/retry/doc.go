// Package retry provides backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. [WithConstantBackoff] keeps
// the delay fixed between attempts. Both are used for external tool
// invocations that may fail transiently.
package retry
