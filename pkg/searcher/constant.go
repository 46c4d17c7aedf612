package searcher

const (
	DEFAULT_THRESHOLD = 0.3
	MIN_THRESHOLD     = 0.0
	MAX_THRESHOLD     = 1.0
)
