package telegram

// Telegram API entity structs

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int       `json:"message_id"`
	Text      string    `json:"text"`
	Chat      Chat      `json:"chat"`
	Photo     []Photo   `json:"photo,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Document  *Document `json:"document,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Photo struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type Document struct {
	FileName     string `json:"file_name"`
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	MimeType     string `json:"mime_type,omitempty"`
}

// Image returns the file to OCR: the largest photo size, or the attached
// document. ok is false for messages without media.
func (m *Message) Image() (fileID, fileUniqueID string, ok bool) {
	if len(m.Photo) > 0 {
		largest := m.Photo[len(m.Photo)-1]
		return largest.FileID, largest.FileUniqueID, true
	}
	if m.Document != nil {
		return m.Document.FileID, m.Document.FileUniqueID, true
	}
	return "", "", false
}

type GetFileResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

type SendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}
