package models

// Feed names, used in logs, diagnostics and synthesized IDs.
const (
	FeedTransactions = "transactions"
	FeedStories      = "stories"
)

// DefaultCategory is used for ledger rows with an empty category cell.
const DefaultCategory = "General"

// Synthesized ID prefixes for rows without an explicit id column.
const (
	TransactionIDPrefix = "trans-"
	StoryIDPrefix       = "story-"
)

// File permissions
const PermissionReportFile = 0644
