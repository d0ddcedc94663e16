// Package memory implements the analysis-and-retrieval pipelines over a
// similarity-search index.
//
// Write path: Analyzer turns one Memory into a stored, annotated vector —
// sentiment classification and tag extraction (degradable), embedding
// generation, and an idempotent upsert keyed by "memory_" + ID.
//
// Read path: Retriever embeds a query and returns nearest stored records
// ranked by similarity, together with the query embedding.
//
// Both pipelines are stateless transformations over two long-lived
// collaborators, constructed once at process start and passed in by
// reference:
//   - Embedder: text-to-vector conversion (mock, onnx, openai, cached)
//   - Index: nearest-neighbor storage (chromem)
//
// Concurrent requests need no locking here; any concurrency control lives
// inside the collaborators. The only suspension points are the Embedder
// and Index calls.
package memory
