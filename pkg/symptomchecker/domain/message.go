package domain

const (
	RoleUser = "user"

	ContentTypeText     = "text"
	ContentTypeImageURL = "image_url"
)

// ChatMessage a role-tagged message whose content is an ordered list of blocks (text or image).
type ChatMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock either a text span (Type == ContentTypeText) or an embedded image (Type == ContentTypeImageURL).
type ContentBlock struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// NewTextBlock creates a text block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// NewImageBlock creates an image block from a data URI (or a regular URL).
func NewImageBlock(url string) ContentBlock {
	return ContentBlock{Type: ContentTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// Text concatenates all text blocks of the message. Useful for logging (we never want to log base64 images).
func (c ChatMessage) Text() string {
	var result string
	for _, block := range c.Content {
		if block.Type == ContentTypeText {
			if result != "" {
				result += "\n"
			}
			result += block.Text
		}
	}
	return result
}
