// Package gemini implements the generation.Client interface using
// Google's Gemini API. Each method performs exactly one request: retrying,
// caching, and conversation state are deliberately left to callers.
package gemini
