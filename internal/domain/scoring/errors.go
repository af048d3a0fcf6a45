package scoring

import "errors"

var (
	// ErrSnapshotNotFound 查無篩選快照
	ErrSnapshotNotFound = errors.New("screener snapshot not found")

	// ErrEmptyUniverse 股票池為空
	ErrEmptyUniverse = errors.New("empty symbol universe")
)
