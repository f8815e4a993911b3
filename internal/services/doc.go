// Package services holds the business logic between the HTTP handlers and
// the unified dataset: chart aggregation, the ride catalog, dataset summary
// and process health. Services are constructed once at startup with their
// dependencies injected and are safe for concurrent use.
package services
