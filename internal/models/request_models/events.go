package request_models

// Inbound conversational events as the messaging gateway delivers them.
// ChatID is the gateway's stable per-user identifier.

type StartEvent struct {
	ChatID   int64  `json:"chat_id" binding:"required"`
	Username string `json:"username"`
}

type TextEvent struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type LocationEvent struct {
	ChatID    int64   `json:"chat_id" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

type MenuEvent struct {
	ChatID   int64  `json:"chat_id" binding:"required"`
	ButtonID string `json:"button_id" binding:"required"`
}

type CancelEvent struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}
