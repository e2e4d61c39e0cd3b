// Package api handles incoming HTTP requests, request validation and
// response formatting for the learning-content endpoints. It acts as an
// adapter between HTTP clients and content.Service: JSON bodies and
// multipart uploads are decoded here, and service errors are mapped to
// status codes and client-safe messages by HandleAPIError.
package api
