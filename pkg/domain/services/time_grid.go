package services

import "time"

// WeekBucket is one weekly planning period. Start is Monday 00:00:00.000 UTC,
// End is the following Sunday 23:59:59.999 UTC.
type WeekBucket struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the bucket (inclusive bounds).
func (b WeekBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// WeekStart returns the Monday 00:00 UTC of d's ISO week. A Sunday maps to
// the previous Monday. Time-of-day is stripped.
func WeekStart(d time.Time) time.Time {
	d = d.UTC()
	offset := int(d.Weekday()) - 1 // Sunday = 0
	if offset < 0 {
		offset = 6
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -offset)
}

// WeeklyBuckets returns n contiguous weekly buckets beginning at start.
// Start is expected to already be a week start; callers pass WeekStart(d).
func WeeklyBuckets(start time.Time, n int) []WeekBucket {
	buckets := make([]WeekBucket, 0, n)
	for i := 0; i < n; i++ {
		bucketStart := start.AddDate(0, 0, 7*i)
		bucketEnd := bucketStart.AddDate(0, 0, 6).
			Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
		buckets = append(buckets, WeekBucket{Start: bucketStart, End: bucketEnd})
	}
	return buckets
}

// BucketIndex returns the index of the bucket containing t, or -1 when t is
// outside the grid.
func BucketIndex(buckets []WeekBucket, t time.Time) int {
	for i, b := range buckets {
		if b.Contains(t) {
			return i
		}
	}
	return -1
}
