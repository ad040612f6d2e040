// Package mock provides deterministic test doubles for the ai package.
// The mock embedder hashes input text into a stable pseudo-random vector,
// so identical text always embeds identically across test runs.
package mock
