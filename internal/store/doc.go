// Package store defines the persistence interfaces consumed by the domain
// services, along with the sentinel errors and transaction helpers shared by
// all store implementations.
package store
