package domain

import "time"

// VerificationCode is a short-lived SMS code tied to a phone number.
// PK: phone, SK: code_id. The code_id is a ULID, so a descending range query
// on the sort key returns the most recently created record first.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Phone      string     `json:"phone" dynamodbav:"phone"`
	CodeID     string     `json:"code_id" dynamodbav:"code_id"`
	Code       string     `json:"code" dynamodbav:"code"`
	Used       bool       `json:"used" dynamodbav:"used"`
	ExpiresAt  int64      `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	VerifiedAt *time.Time `json:"verified_at,omitempty" dynamodbav:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" dynamodbav:"created_at"`
}

// Expired reports whether the code's expiry is in the past at the given instant.
func (v *VerificationCode) Expired(now time.Time) bool {
	return v.ExpiresAt < now.Unix()
}
