// Package errs define custom error types and utilities.
//
// It holds two families of errors:
//   - domain errors (ValidationError, NotFoundError, StoreError) returned by
//     the service and repository layers;
//   - HTTPError, the JSON shape every failed request is rendered as.
//
// The global error handler translates the first family into the second.
package errs
