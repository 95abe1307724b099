package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Adsharma18/AiCareerCoachClean/internal/constant"
	"github.com/Adsharma18/AiCareerCoachClean/internal/dto"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"

	"github.com/go-pdf/fpdf"
)

const pdfModule = "PdfService"

// Page geometry and type sizes in points
const (
	pageMargin   = 72.0
	bulletIndent = 14.0

	titleSize   = 20.0
	headingSize = 14.0
	bodySize    = 11.0

	titleLineHeight   = 24.0
	headingLineHeight = 18.0
	bodyLineHeight    = 14.0
)

// Vertical spacing in points
const (
	spaceAfterTitle   = 28.8
	spaceAfterHeading = 21.6
	spaceAfterDate    = 36
	spaceBlankLine    = 10.8
	spaceAfterLine    = 8.6
)

const (
	latinFamily   = "Helvetica"
	unicodeFamily = "CoachUnicode"
	bulletGlyph   = "•"
)

// cp1252 characters outside Latin-1 that Helvetica can still draw
const cp1252Extras = "€‚ƒ„…†‡ˆ‰Š‹ŒŽ‘’“”•–—˜™š›œžŸ"

var ErrUnicodeFontUnavailable = errors.New("no unicode font available for non-Latin text")

// Searched after PdfOptions.UnicodeFontPath
var unicodeFontCandidates = []string{
	"/usr/share/fonts/truetype/noto/NotoSansDevanagari-Regular.ttf",
	"/usr/share/fonts/noto/NotoSansDevanagari-Regular.ttf",
	"/usr/share/fonts/truetype/lohit-devanagari/Lohit-Devanagari.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
	"/usr/share/fonts/gnu-free/FreeSans.ttf",
}

type PdfOptions struct {
	UnicodeFontPath string // TrueType font used when the text leaves cp1252
	Compress        bool
}

type RenderedPDF struct {
	Filename string
	Content  []byte
	Pages    int
}

type IPdfService interface {
	Render(req *dto.ExportPDFRequest) (*RenderedPDF, error)
}

type pdfService struct {
	logger      logger.ILogger
	now         func() time.Time
	unicodeFont []byte
	compress    bool
}

func NewPdfService(log logger.ILogger, opts PdfOptions) IPdfService {
	return &pdfService{
		logger:      log,
		now:         time.Now,
		unicodeFont: loadUnicodeFont(log, opts.UnicodeFontPath),
		compress:    opts.Compress,
	}
}

func loadUnicodeFont(log logger.ILogger, configured string) []byte {
	paths := unicodeFontCandidates
	if configured != "" {
		paths = append([]string{configured}, paths...)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if path == configured {
				log.Warn(pdfModule, "Configured unicode font is unreadable", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
			}
			continue
		}
		log.Info(pdfModule, "Unicode font loaded", map[string]interface{}{"path": path})
		return data
	}

	log.Warn(pdfModule, "No unicode font found, non-Latin exports will be rejected", nil)
	return nil
}

type blockKind int

const (
	blockTitle blockKind = iota
	blockHeading
	blockParagraph
	blockBullet
	blockSpace
)

type block struct {
	kind  blockKind
	text  string
	space float64
}

// layout turns an export request into the ordered blocks of the document
func (s *pdfService) layout(req *dto.ExportPDFRequest) []block {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = constant.PdfDefaultTitle
	}

	blocks := []block{
		{kind: blockTitle, text: title},
		{kind: blockSpace, space: spaceAfterTitle},
	}

	if goal := strings.TrimSpace(req.Goal); goal != "" {
		blocks = append(blocks,
			block{kind: blockHeading, text: "Career Goal: " + goal},
			block{kind: blockSpace, space: spaceAfterHeading},
		)
	}

	blocks = append(blocks,
		block{kind: blockParagraph, text: "Generated on: " + s.now().UTC().Format("2006-01-02 15:04 UTC")},
		block{kind: blockSpace, space: spaceAfterDate},
		block{kind: blockHeading, text: constant.PdfPlanHeading},
		block{kind: blockSpace, space: spaceAfterHeading},
	)

	for _, raw := range strings.Split(req.Content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			blocks = append(blocks, block{kind: blockSpace, space: spaceBlankLine})
			continue
		}

		if item, ok := bulletItem(line); ok {
			blocks = append(blocks, block{kind: blockBullet, text: item})
		} else {
			blocks = append(blocks, block{kind: blockParagraph, text: line})
		}
		blocks = append(blocks, block{kind: blockSpace, space: spaceAfterLine})
	}

	return blocks
}

func (s *pdfService) Render(req *dto.ExportPDFRequest) (*RenderedPDF, error) {
	blocks := s.layout(req)

	unicode := false
	for _, b := range blocks {
		if !cp1252Encodable(b.text) {
			unicode = true
			break
		}
	}
	if unicode && s.unicodeFont == nil {
		s.logger.Warn(pdfModule, "PDF export needs a unicode font", nil)
		return nil, ErrUnicodeFontUnavailable
	}

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetCompression(s.compress)
	doc.SetCreationDate(s.now())
	doc.SetTitle(blocks[0].text, true)

	family := latinFamily
	tr := doc.UnicodeTranslatorFromDescriptor("")
	if unicode {
		family = unicodeFamily
		doc.AddUTF8FontFromBytes(family, "", s.unicodeFont)
		doc.AddUTF8FontFromBytes(family, "B", s.unicodeFont)
		tr = func(text string) string { return text }
	}

	doc.AddPage()
	for _, b := range blocks {
		switch b.kind {
		case blockTitle:
			doc.SetFont(family, "B", titleSize)
			doc.MultiCell(0, titleLineHeight, tr(b.text), "", "C", false)
		case blockHeading:
			doc.SetFont(family, "B", headingSize)
			doc.MultiCell(0, headingLineHeight, tr(b.text), "", "L", false)
		case blockParagraph:
			doc.SetFont(family, "", bodySize)
			doc.MultiCell(0, bodyLineHeight, tr(b.text), "", "L", false)
		case blockBullet:
			doc.SetFont(family, "", bodySize)
			doc.CellFormat(bulletIndent, bodyLineHeight, tr(bulletGlyph), "", 0, "L", false, 0, "")
			doc.MultiCell(0, bodyLineHeight, tr(b.text), "", "L", false)
		case blockSpace:
			// Ln moves the cursor only, so trailing space never opens a page
			doc.Ln(b.space)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		s.logger.Error(pdfModule, "PDF generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	filename := sanitizeFilename(req.Filename)
	s.logger.Info(pdfModule, "PDF generated", map[string]interface{}{
		"filename": filename,
		"pages":    doc.PageCount(),
		"bytes":    buf.Len(),
		"unicode":  unicode,
	})

	return &RenderedPDF{Filename: filename, Content: buf.Bytes(), Pages: doc.PageCount()}, nil
}

func cp1252Encodable(text string) bool {
	for _, r := range text {
		if r < 0x80 || (r >= 0xA0 && r <= 0xFF) || strings.ContainsRune(cp1252Extras, r) {
			continue
		}
		return false
	}
	return true
}

// bulletItem recognises "- x", "* x", "• x" and "1. x" through "9. x"
func bulletItem(line string) (string, bool) {
	isBullet := strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "•") ||
		(len(line) >= 2 && line[0] >= '1' && line[0] <= '9' && line[1] == '.')
	if !isBullet {
		return "", false
	}

	item := strings.TrimLeft(line, "-*•")
	if len(item) >= 2 && item[0] >= '1' && item[0] <= '9' && item[1] == '.' {
		item = item[2:]
	}
	return strings.TrimSpace(item), true
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer(`"`, "", "\r", "", "\n", "", `\`, "/").Replace(name)
	name = filepath.Base(name)
	if name == "" || name == "." || name == "/" {
		return constant.PdfDefaultFilename
	}
	return name
}
