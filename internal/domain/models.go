package domain

// Item is a single entry in the viewed collection
type Item struct {
	Index int    // position in the source, 0-based
	Text  string // rendered line content
	Tag   string // optional category label (log level, marker, ...)
}

// LoadProgress represents the current loading state
type LoadProgress struct {
	IsLoading  bool
	ItemsFound int
	Source     string
}
