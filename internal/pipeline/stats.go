package pipeline

// RunStats tracks aggregate counters and byte totals across one run.
type RunStats struct {
	Total          int   // files loaded from the directory
	Duplicates     int   // files flagged as byte-identical copies
	Deleted        int   // duplicates physically deleted
	Renamed        int   // files moved to their resolved names
	BytesReclaimed int64 // disk space freed by deletion
}
