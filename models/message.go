package models

import "time"

// Message is a single entry in a conversation thread.
type Message struct {
	ID             string     `bson:"id" json:"id"`
	ConversationID string     `bson:"conversation_id" json:"conversationId"`
	UserID         string     `bson:"user_id" json:"userId"`
	Content        string     `bson:"content" json:"content"`
	AttachmentURL  string     `bson:"attachment_url,omitempty" json:"attachmentUrl,omitempty"`
	ReadAt         *time.Time `bson:"read_at,omitempty" json:"readAt,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
}
