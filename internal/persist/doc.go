// Package persist saves and restores the record collection.
//
// The collection is stored as a single JSON document under a fixed key in a
// local key-value store:
//
//	key:   usertable.state
//	value: {"users":[{"id":"...","name":"...","age":30,"email":"..."}]}
//
// Backends implement KV. SQLite is the durable backend; Memory backs tests
// and throwaway sessions. Nop stands in where no durable storage exists.
//
// # Failure Handling
//
// Persistence never fails the caller:
//   - Save errors are logged and dropped; the in-memory store stays authoritative.
//   - Load treats a missing key, invalid JSON, and a document of the wrong
//     shape the same way: no prior state.
//
// Saves are fire-and-forget. A crash between a mutation and its save loses
// that mutation on restart.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package persist
