package models

// Action tags a message on the channel between the page layer and the orchestrator.
type Action string

const (
	ActionCheckLink            Action = "checkLink"
	ActionCheckLinkWithContent Action = "checkLinkWithContent"
	ActionToggleLinkChecking   Action = "toggleLinkChecking"
	ActionToggleMode           Action = "toggle-mode"
	ActionCheckTrigger         Action = "check-link"
	ActionTestConnection       Action = "testConnection"
	ActionGetStatus            Action = "getStatus"
	ActionHoverLink            Action = "hoverLink"
	ActionLeaveLink            Action = "leaveLink"
	ActionCloseTooltip         Action = "closeTooltip"

	// ActionTriggerCheck is sent back to the page layer when the keyboard
	// shortcut fires while checking is enabled.
	ActionTriggerCheck Action = "triggerCheckOnHoveredLink"
)

// Message is one request on the channel. Only the fields relevant to the
// action are set.
type Message struct {
	Action  Action            `json:"action"`
	URL     string            `json:"url,omitempty"`
	Content *ExtractedContent `json:"content,omitempty"`
	Enabled *bool             `json:"enabled,omitempty"`
}

// Response is the reply to a Message. Check actions fill the embedded
// Verdict; mode actions fill Enabled.
type Response struct {
	Verdict
	Action      Action `json:"action,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
	Tooltip     string `json:"tooltip,omitempty"`
	Notice      string `json:"notice,omitempty"`
	RequestID   string `json:"requestId,omitempty"`
	Configured  *bool  `json:"configured,omitempty"`
	TestMessage string `json:"testMessage,omitempty"`
}
