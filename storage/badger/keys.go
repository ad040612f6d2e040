package badger

import "fmt"

// Key prefixes for different data types
const (
	classPrefix          = "ontcls"
	relationPrefix       = "ontrel"
	datasetPrefix        = "findat"
	datasetDocPrefix     = "findatdoc"
	observationPrefix    = "finobs"
	observationSeqPrefix = "finobsds" // dataset index
	embeddingPrefix      = "embrec"
	embeddingIDPrefix    = "embrecid" // record-ID index
	observationIDSeq     = "finobsseq"
	embeddingIDSeq       = "embrecseq"
	checkpointSuffix     = "chkpt"
)

// makeClassKey generates a key for an ontology class by class ID.
func makeClassKey(classID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", classPrefix, classID))
}

// makeRelationKey generates a key for a relation by its natural
// (subject, predicate, object) key.
func makeRelationKey(relationKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s", relationPrefix, relationKey))
}

// makeDatasetKey generates a key for a dataset by ID.
func makeDatasetKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", datasetPrefix, id))
}

// makeDatasetDocKey generates the document-ID index key for a dataset.
// One key per source document enforces the per-document uniqueness of
// datasets inside a single transaction.
func makeDatasetDocKey(documentID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", datasetDocPrefix, documentID))
}

// makeObservationKey generates a key for an observation. The sequence number
// prefix keeps prefix scans in insertion order.
func makeObservationKey(seq uint64, id string) []byte {
	return []byte(fmt.Sprintf("%s:%020d:%s", observationPrefix, seq, id))
}

// makeObservationDatasetKey generates the composite dataset index key.
// Format: prefix:datasetID:seq
func makeObservationDatasetKey(datasetID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s:%s:%020d", observationSeqPrefix, datasetID, seq))
}

// makeEmbeddingKey generates a key for an embedding record. The sequence
// number prefix keeps prefix scans in insertion order, which search relies
// on for stable tie-breaking.
func makeEmbeddingKey(seq uint64, id string) []byte {
	return []byte(fmt.Sprintf("%s:%020d:%s", embeddingPrefix, seq, id))
}

// makeEmbeddingIDKey generates the record-ID index key for an embedding
// record. It maps the stable record ID to the sequence-ordered primary key
// so updates can locate a record without scanning.
func makeEmbeddingIDKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", embeddingIDPrefix, id))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:%s", processorType, checkpointSuffix))
}
