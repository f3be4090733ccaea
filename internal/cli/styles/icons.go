package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGo        = "" // go gopher
	IconArrow     = "" // arrow right

	IconCheck   = ""
	IconX       = ""
	IconWarning = ""
	IconInfo    = ""

	IconConfig = ""
	IconFolder = ""
	IconSocket = "" // plug
	IconLayout = "" // columns
	IconWindow = ""
	IconCycle  = "" // refresh
	IconTree   = ""
)
