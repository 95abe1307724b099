package service

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/Adsharma18/AiCareerCoachClean/internal/constant"
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestPdfService() *pdfService {
	return &pdfService{
		logger: logger.NewNopLogger(),
		now: func() time.Time {
			return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
		},
	}
}

// pdfString is text as fpdf writes it with a UTF-8 font: UTF-16BE, escaped
func pdfString(text string) []byte {
	var raw []byte
	for _, unit := range utf16.Encode([]rune(text)) {
		raw = append(raw, byte(unit>>8), byte(unit))
	}
	escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`).Replace(string(raw))
	return []byte("(" + escaped + ")Tj")
}

func TestPdfService_Render(t *testing.T) {
	svc := newTestPdfService()

	out, err := svc.Render(&dto.ExportPDFRequest{
		Content: "Month 1: Basics\n\n- Learn SQL\n2. Build a project\nPlain line",
		Goal:    "Data Analyst",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.PdfDefaultFilename, out.Filename)
	assert.Equal(t, 1, out.Pages)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))

	body := string(out.Content)
	assert.Contains(t, body, "(Career Roadmap & Debate Summary)Tj")
	assert.Contains(t, body, "(Career Goal: Data Analyst)Tj")
	assert.Contains(t, body, "(Generated on: 2025-03-14 09:30 UTC)Tj")
	assert.Contains(t, body, "(Detailed Roadmap / Plan:)Tj")
	assert.Contains(t, body, "(Month 1: Basics)Tj")
	assert.Contains(t, body, "(\x95)Tj")
	assert.Contains(t, body, "(Learn SQL)Tj")
	assert.Contains(t, body, "(Build a project)Tj")
	assert.Contains(t, body, "(Plain line)Tj")
}

func TestPdfService_TitleAndFilename(t *testing.T) {
	svc := newTestPdfService()

	out, err := svc.Render(&dto.ExportPDFRequest{
		Content:  "plan",
		Title:    "My Career Roadmap & Advice",
		Filename: "../career-roadmap.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "career-roadmap.pdf", out.Filename)
	assert.Contains(t, string(out.Content), "(My Career Roadmap & Advice)Tj")
	assert.NotContains(t, string(out.Content), "Career Goal:")
}

func TestPdfService_LatinAccentsStayOnCoreFont(t *testing.T) {
	svc := newTestPdfService()

	out, err := svc.Render(&dto.ExportPDFRequest{Content: "Café – “résumé” tips"})
	require.NoError(t, err)

	assert.Contains(t, string(out.Content), "(Caf\xe9 \x96 \x93r\xe9sum\xe9\x94 tips)Tj")
	assert.NotContains(t, string(out.Content), "/Encoding /Identity-H")
}

func TestPdfService_HindiRoadmapKeepsText(t *testing.T) {
	svc := newTestPdfService()
	svc.unicodeFont = goregular.TTF

	out, err := svc.Render(&dto.ExportPDFRequest{
		Content: "महीने 1: Python सीखें\n- SQL का अभ्यास करें\nरोडमैप तैयार है",
		Goal:    "डेटा एनालिस्ट",
	})
	require.NoError(t, err)

	assert.Contains(t, string(out.Content), "/Encoding /Identity-H")
	assert.Contains(t, string(out.Content), string(pdfString("Career Goal: डेटा एनालिस्ट")))
	assert.Contains(t, string(out.Content), string(pdfString("महीने 1: Python सीखें")))
	assert.Contains(t, string(out.Content), string(pdfString("SQL का अभ्यास करें")))
	assert.Contains(t, string(out.Content), string(pdfString("रोडमैप तैयार है")))
	assert.NotContains(t, string(out.Content), "(????")
}

func TestPdfService_HindiWithoutFontIsRejected(t *testing.T) {
	svc := newTestPdfService()

	out, err := svc.Render(&dto.ExportPDFRequest{Content: "महीने 1: Python सीखें"})

	assert.ErrorIs(t, err, ErrUnicodeFontUnavailable)
	assert.Nil(t, out)
}

func TestPdfService_LayoutKeepsDevanagari(t *testing.T) {
	svc := newTestPdfService()

	blocks := svc.layout(&dto.ExportPDFRequest{Content: "• रोडमैप: 6 महीने"})

	last := blocks[len(blocks)-2]
	assert.Equal(t, blockBullet, last.kind)
	assert.Equal(t, "रोडमैप: 6 महीने", last.text)
}

// Trailing blank lines after content that ends at the foot of a page must
// not open another page.
func TestPdfService_NoEmptyTrailingPage(t *testing.T) {
	svc := newTestPdfService()

	for lines := 1; lines <= 60; lines++ {
		var content strings.Builder
		for i := 1; i <= lines; i++ {
			fmt.Fprintf(&content, "Week %d: practice\n", i)
		}

		plain, err := svc.Render(&dto.ExportPDFRequest{Content: content.String()})
		require.NoError(t, err)

		padded, err := svc.Render(&dto.ExportPDFRequest{Content: content.String() + "\n\n\n\n"})
		require.NoError(t, err)

		assert.Equal(t, plain.Pages, padded.Pages, "lines=%d", lines)
	}
}

func TestPdfService_LongContentBreaksPages(t *testing.T) {
	svc := newTestPdfService()

	out, err := svc.Render(&dto.ExportPDFRequest{
		Content: strings.Repeat("Month 1: build a portfolio project and publish it\n", 80),
	})
	require.NoError(t, err)

	assert.Greater(t, out.Pages, 1)
	assert.Equal(t, out.Pages, bytes.Count(out.Content, []byte("/Type /Page\n")))
}

func TestCp1252Encodable(t *testing.T) {
	assert.True(t, cp1252Encodable("Plain ASCII"))
	assert.True(t, cp1252Encodable("Café • “quotes” €"))
	assert.False(t, cp1252Encodable("रोडमैप"))
	assert.False(t, cp1252Encodable("Пример"))
}

func TestLoadUnicodeFont_MissingConfiguredPath(t *testing.T) {
	original := unicodeFontCandidates
	unicodeFontCandidates = nil
	defer func() { unicodeFontCandidates = original }()

	assert.Nil(t, loadUnicodeFont(logger.NewNopLogger(), "/nonexistent/font.ttf"))
}

func TestBulletItem(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		bullet bool
	}{
		{"- item", "item", true},
		{"* item", "item", true},
		{"• item", "item", true},
		{"1. first", "first", true},
		{"9.last", "last", true},
		{"10. tenth", "", false},
		{"Month 1", "", false},
		{"2024 plan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := bulletItem(tt.line)
			assert.Equal(t, tt.bullet, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "roadmap.pdf", sanitizeFilename(""))
	assert.Equal(t, "plan.pdf", sanitizeFilename(`a\b/plan.pdf`))
	assert.Equal(t, "x.pdf", sanitizeFilename(`"x.pdf"`))
}
