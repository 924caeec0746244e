package response_models

// MenuOption is one selectable button. ID is what the gateway sends back in a
// MenuEvent; Label is what it renders.
type MenuOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Prompt tells the gateway what to show next. Options are keyboard rows;
// RequestLocation asks the gateway to offer a location share control.
type Prompt struct {
	Text            string         `json:"text"`
	Options         [][]MenuOption `json:"options,omitempty"`
	RequestLocation bool           `json:"request_location,omitempty"`
	Stage           string         `json:"stage"`
}
