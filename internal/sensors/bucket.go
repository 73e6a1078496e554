package sensors

import "time"

// DefaultBucketSize is the cache validity window.
const DefaultBucketSize = 15 * time.Minute

const bucketLayout = "2006-01-02T15:04:05.000Z"

// BucketKey truncates t to the start of its size-long interval on the UTC
// grid and returns it as an ISO-8601 UTC string. Instants inside the same
// interval share a key.
func BucketKey(t time.Time, size time.Duration) string {
	if size <= 0 {
		size = DefaultBucketSize
	}
	return t.UTC().Truncate(size).Format(bucketLayout)
}

// NextBucket returns the start of the bucket following the one t falls in.
func NextBucket(t time.Time, size time.Duration) time.Time {
	if size <= 0 {
		size = DefaultBucketSize
	}
	return t.UTC().Truncate(size).Add(size)
}
