package models

// MaxContentChars caps ExtractedContent.Content, counted in characters.
const MaxContentChars = 15000

// ExtractedContent is the normalized excerpt of a single page that gets
// handed to the prompt builder. Title is non-empty for every usable page.
type ExtractedContent struct {
	Title       string `json:"title" yaml:"title"`
	Header      string `json:"header" yaml:"header"`
	Content     string `json:"content" yaml:"content"`
	Description string `json:"description" yaml:"description"`
	Keywords    string `json:"keywords" yaml:"keywords"`
	Author      string `json:"author" yaml:"author"`
	PublishDate string `json:"publishDate" yaml:"publish_date"`
}
