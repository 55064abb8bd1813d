package styles

// Score and status glyphs. Plain unicode so the table renders without a
// patched font.
var (
	IconAgree     = "✓"
	IconDisagree  = "✗"
	IconUnset     = "·"
	IconBusy      = "⋯"
	IconCursor    = "┃"
	IconChecked   = "☑"
	IconUnchecked = "☐"
)

// Notification level glyphs.
var (
	IconNotifyInfo    = "ℹ"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✗"
)
