// Package history provides an optional SQLite audit log of objmacro runs.
//
// Each processed G-code file produces one row in runs, plus one row per
// distinct object in run_objects. Rows are append-only.
//
// # Ordering
//
//   - runs are ordered by seq (INTEGER PRIMARY KEY), never by created_at
//   - run_objects keep the emission order through their ord column
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Input and output content is fingerprinted with HighwayHash-64 so a later
// run can tell whether a file changed since it was processed.
package history
