// Package knowledge implements the ingestion and retrieval core of ragbase.
//
// A Resource is a unit of source text submitted to the knowledge base. On
// ingestion it is split into chunks, each chunk is embedded into a
// fixed-dimension vector, and the (content, vector) pairs are persisted in
// PostgreSQL with pgvector, tied to the resource by a cascade-deleting
// foreign key.
//
// Data flow:
//
//	Resource content
//	     |
//	     v
//	Chunker (delimiter split)
//	     |
//	     v
//	Embedder (batch, remote provider)
//	     |
//	     v
//	Store (resources + embeddings tables, HNSW cosine index)
//	     |
//	     | (when searching)
//	     v
//	Query embedding -> vector similarity search -> ranked results
//
// Three types cooperate:
//
//   - Store: persistence and similarity search over a sqlc Querier
//   - Ingestor: validate -> persist resource -> chunk -> embed -> persist chunks
//   - Retriever: embed query -> search above the similarity floor
//
// Similarity is 1 - cosine distance; only results strictly above the
// configured floor are returned, ordered descending, capped at the
// configured limit. The HNSW index trades exact recall for sub-linear
// query time; near-threshold results may be omitted.
//
// A provider failure during batch embedding does not fail ingestion: the
// resource is kept, zero chunks are stored, and IngestResult.EmbeddingFailed
// reports the degradation so callers can decide policy (retry, re-embed,
// accept). A provider failure during retrieval is a hard error, since a
// query without a vector cannot search.
package knowledge
