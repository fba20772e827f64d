package dynamo

// DynamoDB attribute names used in repo-built update expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUsed       = "used"
	fieldVerifiedAt = "verified_at"
)
