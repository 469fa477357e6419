package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	t func(string) string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// NewMarkdownFormatter creates a Markdown formatter. Labels are English
// unless a translator is given.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{t: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.t

	fmt.Fprintf(&b, "# %s\n\n", t("Recording Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	f.section(&b, t("Session"), [][2]string{
		{t("Session ID"), s.Session.ID},
		{t("Output"), s.Session.Output},
		{t("Target"), s.Session.Target},
		{t("Started"), formatTime(s.Session.StartedAt)},
	})

	rec := s.Recording
	f.section(&b, t("Recording"), [][2]string{
		{t("Frames Recorded"), fmt.Sprintf("%d", rec.FramesRecorded)},
		{t("Frames Dropped"), fmt.Sprintf("%d", rec.FramesDropped)},
		{t("Wall Duration"), formatMs(rec.WallDuration)},
		{t("Average Interval"), formatMs(rec.AvgInterval)},
		{t("Max Interval"), formatMs(rec.MaxInterval)},
	})

	set := s.Settings
	f.section(&b, t("Settings"), [][2]string{
		{t("Frame Rate"), fmt.Sprintf("%g fps", set.FPS)},
		{t("Output Size"), fmt.Sprintf("%dx%d", set.Width, set.Height)},
		{t("Source Size"), fmt.Sprintf("%dx%d", set.SourceWidth, set.SourceHeight)},
		{t("Padding"), fmt.Sprintf("%dx%d", set.PadW, set.PadH)},
		{t("Display Scale"), fmt.Sprintf("%.2f", set.Scale)},
		{t("Container"), set.Container},
		{t("Bitrate"), fmt.Sprintf("%d kbps", set.Bitrate)},
		{t("GOP Size"), fmt.Sprintf("%d", set.GOPSize)},
		{t("Max B-Frames"), fmt.Sprintf("%d", set.MaxBFrames)},
		{t("Preset"), set.Preset},
	})

	v := s.Video
	rows := [][2]string{
		{t("Video File Size"), humanize.Bytes(uint64(v.FileSize))},
	}
	if v.Codec != "" {
		rows = append(rows,
			[2]string{t("Codec"), v.Codec},
			[2]string{t("Resolution"), fmt.Sprintf("%dx%d", v.Width, v.Height)},
			[2]string{t("Samples"), fmt.Sprintf("%d", v.SampleCount)},
			[2]string{t("Video Duration"), fmt.Sprintf("%d ms", v.DurationMs)},
		)
	} else {
		rows = append(rows, [2]string{t("Codec"), "N/A"})
	}
	f.section(&b, t("Video Details"), rows)

	fmt.Fprintf(&b, "---\n%s framerec\n", t("Generated by"))
	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, title string, rows [][2]string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| %s | %s |\n", f.t("Item"), f.t("Value"))
	b.WriteString("|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")
}

func formatMs(d time.Duration) string {
	return fmt.Sprintf("%d ms", d.Milliseconds())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
