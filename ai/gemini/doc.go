// Package gemini implements the ai interfaces against the Google Gemini
// APIs. Embeddings go through the official genai client so document and
// query task types can be set per request; text generation goes through
// langchaingo for its uniform call options.
package gemini
