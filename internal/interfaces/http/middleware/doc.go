// Package middleware provides the gin middleware chain: request IDs, CORS,
// body limits, bearer authentication, tracing and request validation.
package middleware
