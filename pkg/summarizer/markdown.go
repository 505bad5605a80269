package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Screenshot Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Capture\n\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| Mode | %s |\n", s.Capture.Mode)
	if s.Capture.Window != 0 {
		fmt.Fprintf(&b, "| Window | 0x%x |\n", s.Capture.Window)
	}
	r := s.Capture.Bounds
	fmt.Fprintf(&b, "| Area | %dx%d at (%d, %d) |\n", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	if s.Capture.Delay > 0 {
		fmt.Fprintf(&b, "| Delay | %s |\n", s.Capture.Delay)
	}
	if !s.Capture.CapturedAt.IsZero() {
		fmt.Fprintf(&b, "| Captured At | %s |\n", s.Capture.CapturedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "| Capture Time | %d ms |\n", s.Capture.DurationMs)
	b.WriteString("\n")

	b.WriteString("## Output\n\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| File | `%s` |\n", s.Output.Path)
	fmt.Fprintf(&b, "| Size | %dx%d |\n", s.Output.Width, s.Output.Height)
	fmt.Fprintf(&b, "| File Size | %s |\n", formatBytes(s.Output.FileSize))
	fmt.Fprintf(&b, "| Encode Time | %d ms |\n", s.Output.EncodeMs)
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| Workers | %d |\n", s.Settings.Workers)
	fmt.Fprintf(&b, "| Compression | %s |\n", s.Settings.Compression)
	fmt.Fprintf(&b, "| Filter | %s |\n", s.Settings.Filter)
	b.WriteString("\n")

	b.WriteString("## Delivery\n\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| Clipboard | %s |\n", yesNo(s.Delivery.Copied))
	fmt.Fprintf(&b, "| Notification | %s |\n", yesNo(s.Delivery.Notified))
	if len(s.Delivery.Warnings) > 0 {
		b.WriteString("\n### Warnings\n\n")
		for _, w := range s.Delivery.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

var _ Formatter = (*MarkdownFormatter)(nil)
