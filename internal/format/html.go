package format

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Labels are the report field names rendered in bold, in replacement order
var Labels = []string{"Summary:", "Market Impact:", "Stocks:", "Link:", "Source:"}

const page = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
        h2 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        .story { margin-bottom: 30px; padding: 15px; background: #f8f9fa; border-left: 4px solid #3498db; }
        .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; color: #666; font-size: 12px; }
        a { color: #3498db; text-decoration: none; }
    </style>
</head>
<body>
    <h2>{{.Greeting}}</h2>
    <p>Here are today's top market-moving stories:</p>
    <div class="story">
        {{.Body}}
    </div>
    <div class="footer">
        {{.Footer}}
    </div>
</body>
</html>
`

// HTMLFormatter renders model reports as the briefing email body
type HTMLFormatter struct {
	tmpl     *template.Template
	greeting string
	footer   string
}

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		tmpl:     template.Must(template.New("briefing").Parse(page)),
		greeting: "Good morning! 🌅",
		footer:   "Automated by AI News Agent",
	}
}

// Format bolds the field labels, converts newlines to line breaks and wraps
// the result in the page template. The report is inserted as-is: labels are
// replaced wherever they appear, not only at the start of a line.
func (f *HTMLFormatter) Format(report string) (string, error) {
	var buf bytes.Buffer
	err := f.tmpl.Execute(&buf, struct {
		Greeting string
		Body     template.HTML
		Footer   string
	}{
		Greeting: f.greeting,
		Body:     template.HTML(Markup(report)),
		Footer:   f.footer,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render briefing: %w", err)
	}
	return buf.String(), nil
}

// Markup applies the label and newline substitutions to a report
func Markup(report string) string {
	for _, label := range Labels {
		report = strings.ReplaceAll(report, label, "<strong>"+label+"</strong>")
	}
	report = strings.ReplaceAll(report, "\n\n", "<br><br>")
	return strings.ReplaceAll(report, "\n", "<br>")
}
