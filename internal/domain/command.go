package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandList
	CommandSearch
	CommandAdd
	CommandEdit
	CommandDelete
	CommandToggle
	CommandShow
	CommandSetField
	CommandCommit
	CommandCancel
	CommandDraft
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandList:
		return "list"
	case CommandSearch:
		return "search"
	case CommandAdd:
		return "add"
	case CommandEdit:
		return "edit"
	case CommandDelete:
		return "delete"
	case CommandToggle:
		return "toggle"
	case CommandShow:
		return "show"
	case CommandSetField:
		return "set_field"
	case CommandCommit:
		return "commit"
	case CommandCancel:
		return "cancel"
	case CommandDraft:
		return "draft"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a parsed user action.
type Command struct {
	Type    CommandType
	Field   Field  // set for CommandSetField
	Payload string // card reference, search query, or field value
}
