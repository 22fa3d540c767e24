package models

// CorpusEntry is one reference phrase stored in the vector index.
type CorpusEntry struct {
	ID   string
	Text string
}

// CorpusMatch is a nearest-neighbour hit returned by the vector index.
type CorpusMatch struct {
	ID    string
	Text  string
	Score float64
}
