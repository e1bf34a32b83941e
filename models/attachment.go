package models

// Attachment is a photo picked on the device that has not been uploaded yet.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

func (a Attachment) Size() int64 {
	return int64(len(a.Data))
}
