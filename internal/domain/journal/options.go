package journal

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ListOptions provides filtering options for listing journal entries.
type ListOptions struct {
	Activity string
	Email    string
	Type     *EntryType
	Limit    int
	Offset   int
}
