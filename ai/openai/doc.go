// Package openai provides an ai.Embedder backed by OpenAI-compatible
// embedding APIs via langchaingo. It works with any service exposing the
// /v1/embeddings endpoint, including Ollama, LocalAI, vLLM, and OpenAI
// itself.
package openai
