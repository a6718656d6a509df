// Package service provides the application services that orchestrate the
// domain entities and the persistence layer: user registration, friendship
// management, and directory search. Services load the aggregates an operation
// needs, invoke the domain logic, and persist every mutated aggregate inside
// a single transaction.
package service
