// Package services contains the core business logic, independent of
// transport and storage adapters: ingest, retrieval, context assembly
// and answer synthesis.
package services
