package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// SupportedResumeExtensions lists the resume formats the extractor accepts.
var SupportedResumeExtensions = []string{".pdf", ".docx", ".doc"}

type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText dispatches on the file extension. PDF pages and DOCX
// paragraphs are joined with newlines; no OCR or layout is attempted.
func (e *textExtractor) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return "", fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	var (
		text string
		err  error
	)

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		text, err = extractPDF(filePath)
	case ".docx":
		text, err = extractDocx(filePath)
	case ".doc":
		text, err = extractDoc(filePath)
	default:
		return "", fmt.Errorf("%w: %s. Supported formats: %s",
			ErrUnsupportedFormat, ext, strings.Join(SupportedResumeExtensions, ", "))
	}

	if err != nil {
		log.Printf("❌ Error extracting text from %s: %v", filePath, err)
		return "", err
	}

	return text, nil
}

func extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// unreadable page, keep going
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

func extractDocx(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	paragraphs, err := documentParagraphs(r.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX body: %w", err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// extractDoc handles ".doc" uploads. Many are OOXML files with the old
// extension; binary Word 97 files go through docconv.
func extractDoc(filePath string) (string, error) {
	text, err := extractDocx(filePath)
	if err == nil {
		return text, nil
	}

	res, convErr := docconv.ConvertPath(filePath)
	if convErr != nil {
		return "", fmt.Errorf("failed to convert DOC: %w", convErr)
	}

	return strings.TrimSpace(res.Body), nil
}

// documentParagraphs walks word/document.xml and returns the text of every
// w:p element in document order.
func documentParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				if depth > 0 {
					current.WriteString("\t")
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if depth > 0 {
					depth--
				}
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
