package mail

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/mikey/news-agent/internal/core"
)

// buildMessage renders an RFC 5322 message with a single HTML part
func buildMessage(email *core.Email, date time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", email.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")

	// SMTP DATA requires CRLF line endings
	body := strings.ReplaceAll(email.HTML, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	buf.WriteString("\r\n")

	return buf.Bytes()
}
