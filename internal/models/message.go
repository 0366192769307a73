package models

import "time"

type MessageKind string

const (
	MessageReport MessageKind = "report"
	MessageError  MessageKind = "error"
)

// Message is the one-shot value shown on the home page after a redirect.
type Message struct {
	Kind MessageKind
	Text string
}

func NewReportMessage(text string) *Message {
	return &Message{Kind: MessageReport, Text: text}
}

func NewErrorMessage(text string) *Message {
	return &Message{Kind: MessageError, Text: text}
}

// FlashMessage is the persisted form of a Message, one row per session.
type FlashMessage struct {
	SessionID string      `gorm:"type:text;primary_key" json:"session_id"`
	Kind      MessageKind `gorm:"type:text;not null" json:"kind"`
	Text      string      `gorm:"type:text;not null" json:"text"`
	ExpiresAt time.Time   `gorm:"type:timestamptz;index" json:"expires_at"`
	CreatedAt time.Time   `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (FlashMessage) TableName() string {
	return "flash_messages"
}

func (f *FlashMessage) Message() *Message {
	return &Message{Kind: f.Kind, Text: f.Text}
}
