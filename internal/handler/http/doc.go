// Package http implements the HTTP transport layer of the flow endpoint.
//
// It exposes route wiring, the encrypted webhook handler, and middleware for
// request tracing, access logging, and webhook signature verification. The
// package decodes the encrypted envelope, delegates the plaintext request to
// the service layer, and encrypts the response before writing it.
//
// Error handling follows the platform contract: any signature or envelope
// failure is logged internally and answered with an empty 200 response, so no
// cryptographic detail ever leaks to the caller and the platform does not
// retry a request that cannot succeed.
package http
