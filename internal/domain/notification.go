package domain

// Template identifiers understood by every notifier backend.
const TemplateVerifyEmail = "verify-email"

// Notification failure policies applied when the verification email cannot be sent.
const (
	NotifyFailureKeep   = "keep"   // leave the account for manual remediation
	NotifyFailureDelete = "delete" // remove the just-created account
)
