package cleaner

// HTMLCleaner is the html output format. Normalized markup already is the
// output, so Clean returns its input.
type HTMLCleaner struct{}

// NewHTML creates the html output converter.
func NewHTML() *HTMLCleaner {
	return &HTMLCleaner{}
}

func (c *HTMLCleaner) Clean(markup string) (string, error) {
	return markup, nil
}

func (c *HTMLCleaner) Name() string {
	return FormatHTML
}
