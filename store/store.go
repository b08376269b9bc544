// Package store provides persistence implementations for the members collection.
// The MemberStore interface is defined in the parent members package
// (../store_interface.go) so handlers depend on the interface, not on a backend.
//
// This package contains concrete implementations:
//   - DynamoDBStore: AWS DynamoDB backend, one item per member keyed by "id"
//   - MemoryStore: In-memory backend for tests and local runs
package store
