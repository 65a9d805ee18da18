// Package api handles incoming HTTP requests for the contacts directory:
// request decoding, error mapping, and response formatting. It acts as an
// adapter between HTTP clients and the use cases in internal/service.
package api
