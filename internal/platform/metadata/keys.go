package metadata

// --- SQLite Keys ---
// These keys are used for the 'key' column in the 'metadata' SQLite table.
const (
	// LastSnapshotRecordIDKey stores the ID of the last gacha record that was
	// included in the last successful user statistics snapshot.
	LastSnapshotRecordIDKey = "last_snapshot_record_id"
)

// --- Redis Keys ---
// These keys are used for storing metadata in Redis.
const (
	// RedisLastProcessedRecordIDKey is a Redis String that stores the ID of the
	// last gacha record successfully applied to the Redis statistics caches by
	// the record processor. It's the live checkpoint.
	RedisLastProcessedRecordIDKey = "meta:last_processed_record_id"

	// RedisTotalGachasKey is a Redis String (used as a counter) that stores the
	// live total number of individual draws across all users.
	RedisTotalGachasKey = "meta:total_gachas"
)
