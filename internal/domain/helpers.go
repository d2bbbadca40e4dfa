package domain

import (
	"fmt"
	"time"
)

// for debug
func (m *Message) String() string {
	text := "<nil>"
	if m.Text != nil {
		text = *m.Text
	}
	return fmt.Sprintf("[id:%s, conversation:%s, sender:%d, text:%s, edited:%v, created:%s]",
		m.Id, m.ConversationId, m.SenderId, text, m.IsEdited, m.CreatedAt.Format(time.StampMilli))
}

func (c *Conversation) String() string {
	title := "<nil>"
	if c.Title != nil {
		title = *c.Title
	}
	return fmt.Sprintf("[id:%s, type:%s, title:%s]", c.Id, c.Type, title)
}
