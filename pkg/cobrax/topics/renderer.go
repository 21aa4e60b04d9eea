package topics

// Renderer formats topic content for display.
type Renderer interface {
	// Render converts content to terminal output. format is the file
	// extension, e.g. ".md".
	Render(content string, format string) string
}

// PlainRenderer passes content through unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
