package coachapi

import (
	"context"
	"strings"
	"unicode/utf8"
)

const (
	DefaultExportTitle    = "Career Roadmap"
	DefaultExportFilename = "roadmap.pdf"

	emptyExportMessage = "Cannot export empty or invalid content to PDF"
)

// ExportOptions carries the document metadata sent alongside the content.
// Zero values fall back to the defaults.
type ExportOptions struct {
	Title    string
	Filename string
	Goal     string
}

type exportRequest struct {
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
	Filename string `json:"filename,omitempty"`
	Goal     string `json:"goal,omitempty"`
}

// ExportPDF asks the backend to render content as a PDF and returns the body
// unmodified. Empty or non-text content fails with *ValidationError before any
// request is made; remote failures are returned as *ExportError.
func (c *Client) ExportPDF(ctx context.Context, content string, opts ExportOptions) ([]byte, error) {
	if strings.TrimSpace(content) == "" || !utf8.ValidString(content) {
		return nil, NewValidationError(emptyExportMessage)
	}

	payload := exportRequest{
		Content:  content,
		Title:    opts.Title,
		Filename: opts.Filename,
		Goal:     opts.Goal,
	}
	if payload.Title == "" {
		payload.Title = DefaultExportTitle
	}
	if payload.Filename == "" {
		payload.Filename = DefaultExportFilename
	}

	body, f := c.post(ctx, exportEndpoint, payload)
	if f != nil {
		return nil, f.exportError()
	}
	return body, nil
}
