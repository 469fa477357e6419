package summarizer

import "encoding/json"

// NewJSONFormatter returns a formatter that renders the summary as indented JSON.
func NewJSONFormatter() Formatter {
	return FormatFunc(func(summary *Summary) string {
		// Summary holds only plain values, so marshaling cannot fail.
		data, _ := json.MarshalIndent(summary, "", "  ")
		return string(data) + "\n"
	})
}
