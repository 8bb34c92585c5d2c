package ports

// Notifier is the transient notification channel (the toast mechanism in the
// original UI). Implementations must be safe for concurrent use.
type Notifier interface {
	Success(message string)
	Error(message string)
}
