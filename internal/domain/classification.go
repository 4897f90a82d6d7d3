package domain

// Bucket is the behavioral category detected for the user's latest concern.
type Bucket string

const (
	// BucketUrgeLoop covers compulsive urges such as re-checking or re-texting.
	BucketUrgeLoop Bucket = "URGE_LOOP"
	// BucketOverwhelm covers mental overwhelm and freeze.
	BucketOverwhelm Bucket = "OVERWHELM"
	// BucketSelfDoubt covers insecurity and self-doubt.
	BucketSelfDoubt Bucket = "SELF_DOUBT"
	// BucketOutOfScope covers everything else, including crisis redirects.
	BucketOutOfScope Bucket = "OUT_OF_SCOPE"
)

// Buckets lists every valid bucket.
var Buckets = []Bucket{BucketUrgeLoop, BucketOverwhelm, BucketSelfDoubt, BucketOutOfScope}

// Valid reports whether b is one of the closed bucket values.
func (b Bucket) Valid() bool {
	switch b {
	case BucketUrgeLoop, BucketOverwhelm, BucketSelfDoubt, BucketOutOfScope:
		return true
	default:
		return false
	}
}

// Label returns a human-readable name for the bucket.
func (b Bucket) Label() string {
	switch b {
	case BucketUrgeLoop:
		return "Urge loop"
	case BucketOverwhelm:
		return "Mental overwhelm"
	case BucketSelfDoubt:
		return "Self-doubt"
	default:
		return "Out of scope"
	}
}

// ClassifiedResponse is the sole output contract of the pipeline.
// When Crisis is true, Bucket is always BucketOutOfScope.
type ClassifiedResponse struct {
	Bucket   Bucket `json:"bucket"`
	Crisis   bool   `json:"crisis"`
	Response string `json:"response"`
}
