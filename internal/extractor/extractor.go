package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads an input file and returns its text content page by page.
// Plain-text files come back as a single page; PDFs are extracted with the
// pdf library and gated on readability so binary garbage from image-based or
// custom-font documents never reaches the parser.
func ExtractText(filePath string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return extractPDF(filePath)
	default:
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return []string{string(data)}, nil
	}
}

func extractPDF(filePath string) (pages []string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", openErr)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		fontNames := page.Fonts()
		fonts := make(map[string]*pdf.Font)
		for _, name := range fontNames {
			pf := page.Font(name)
			fonts[name] = &pf
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	if !IsReadableText(pages) {
		return nil, fmt.Errorf("no readable text could be extracted from PDF; the file may be image-based or use custom font encodings")
	}
	return pages, nil
}

// SplitMessages breaks extracted text into individual alert blocks, one per
// parser input. Blocks are separated by blank lines.
func SplitMessages(text string) []string {
	var messages []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			messages = append(messages, block)
		}
	}
	return messages
}

// alertWords that appear in virtually all transaction alerts. If the
// extracted text contains none of these, it is likely garbage.
var alertWords = []string{
	"debited", "credited", "balance", "bal", "amount", "txn",
	"a/c", "account", "date", "transaction", "payment", "upi",
	"₹", "order",
}

// IsReadableText checks that pages contain enough text, that it is mostly
// readable characters rather than binary garbage, and that it contains at
// least one word expected in a transaction alert.
func IsReadableText(pages []string) bool {
	if totalTextLen(pages) <= 20 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}

	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range alertWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of readable characters (letters, digits,
// whitespace, common punctuation and the rupee sign) to total characters.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
				r == ';' || r == '(' || r == ')' || r == '\'' || r == '"' ||
				r == '₹' || r == '#' || r == '*' || r == '→' || r == '%' ||
				r == '&' || r == '@' || r == '!' || r == '?' || r == '+' ||
				r == '=' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
