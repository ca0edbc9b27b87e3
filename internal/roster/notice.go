package roster

// NoticeLevel is the severity of a transient message.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-visible message. ID grows with every notice so a delayed
// dismissal never hides a newer one.
type Notice struct {
	ID    uint64
	Level NoticeLevel
	Text  string
}

// Visible reports whether there is anything to show.
func (n Notice) Visible() bool {
	return n.Text != ""
}

const (
	transportQueryText    = "query failed, check the network connection"
	transportMutationText = "operation failed, check the network connection"
)
