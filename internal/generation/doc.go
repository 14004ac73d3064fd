// Package generation defines the contract between the application and the
// remote generation backend: the Client interface issuing exactly one call
// per invocation, the recursive Shape constraint attached to structured
// requests, the tolerant JSON decoding of structured responses, and the
// two-kind error taxonomy (backend failure vs malformed response).
//
// The package is backend-neutral; the Gemini-backed implementation lives
// in internal/platform/gemini.
package generation
