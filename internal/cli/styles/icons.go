package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconHeart     = "\uf004" // heart
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconCursor   = "\uf054" // chevron-right

	// Sessions / tabs
	IconSessionStack = "\uf24d" // clone/stack
	IconTab          = "\uf0ce" // table
	IconPin          = "\uf08d" // thumb-tack
	IconGroup        = "\uf247" // object-group
	IconIncognito    = "\uf21b" // user-secret
	IconPlay         = "\uf04b" // play (running)
	IconStop         = "\uf04d" // stop (exited)
	IconRestore      = "\uf0e2" // rotate-left (restore)
	IconUndo         = "\uf0e2" // rotate-left
	IconCollapse     = "\uf066" // compress
)
