package domain

import "time"

type Attachment struct {
	Id        AttachmentId
	MessageId MessageId
	FileUrl   string
	FileType  AttachmentType
	FileSize  int64
	CreatedAt time.Time
}

// to iterate thru layers: handler -> service -> storage
type AttachmentCreationData struct {
	MessageId MessageId
	FileUrl   string
	FileType  AttachmentType
	FileSize  int64
}
