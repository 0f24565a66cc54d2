package dynamo

// DynamoDB attribute and index names shared across repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	attrAccountID         = "account_id"
	attrEmail             = "email"
	attrUsername          = "username"
	attrVerified          = "verified"
	attrVerificationToken = "verification_token"
	attrSessionToken      = "session_token"
	attrOwnedItemIDs      = "owned_item_ids"
	attrUpdatedAt         = "updated_at"
	attrKey               = "key"
	attrTodoID            = "todo_id"

	indexEmail             = "email-index"
	indexUsername          = "username-index"
	indexVerificationToken = "verification_token-index"
)
