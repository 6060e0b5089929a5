// response/httperror.go
package response

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/deploymenttheory/go-api-account-client/status"
	"golang.org/x/net/html"
)

const maxBodyMessageLength = 512

// CheckStatus maps a non-2xx HTTP status onto the error taxonomy, attaching whatever message
// can be extracted from the body. It returns nil for 2xx.
func CheckStatus(statusCode int, contentType string, body []byte) error {
	if status.IsSuccess(statusCode) {
		return nil
	}

	msg := ExtractBodyMessage(contentType, body)
	switch {
	case status.IsServerError(statusCode):
		return &ServerError{StatusCode: statusCode, Message: msg}
	case status.IsAccessDenied(statusCode):
		return &AccessDeniedError{Message: msg}
	default:
		return &UnexpectedStatusError{StatusCode: statusCode, Message: msg}
	}
}

// ExtractBodyMessage pulls a short human-readable message out of an error body based on its content type.
func ExtractBodyMessage(contentType string, body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	mimeType, _ := ParseContentTypeHeader(contentType)
	var msg string
	switch mimeType {
	case "application/json":
		msg = parseJSONMessage(body)
	case "application/xml", "text/xml":
		msg = parseXMLMessage(body)
	case "text/html":
		msg = parseHTMLMessage(body)
	default:
		msg = strings.TrimSpace(string(body))
	}
	return truncate(msg, maxBodyMessageLength)
}

// parseJSONMessage looks for the usual message fields in a JSON object.
func parseJSONMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, key := range []string{"msg", "message", "error"} {
		if v, ok := obj[key]; ok && v != nil {
			if m := decodeMessage(v).String(); m != "" {
				return m
			}
		}
	}
	return ""
}

// parseXMLMessage joins the non-blank text nodes of an XML document.
func parseXMLMessage(body []byte) string {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return strings.TrimSpace(string(body))
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return strings.Join(messages, "; ")
}

// parseHTMLMessage concatenates the text of the title and <p> elements of an HTML page.
func parseHTMLMessage(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "title" || n.Data == "h1") {
			if text := nodeText(n); text != "" {
				messages = append(messages, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	return strings.Join(dedupe(messages), "; ")
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			if t := strings.TrimSpace(c.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
