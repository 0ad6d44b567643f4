package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// ExtractText extracts the plain text content of a document body, walking
// paragraphs and tables in document order.
func ExtractText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}

	var text strings.Builder
	for _, element := range doc.Body.Content {
		extractElement(&text, element)
	}
	return text.String()
}

func extractElement(text *strings.Builder, element *docs.StructuralElement) {
	if element == nil {
		return
	}

	if element.Paragraph != nil {
		extractParagraph(text, element.Paragraph)
	}
	if element.Table != nil {
		extractTable(text, element.Table)
	}
}

func extractParagraph(text *strings.Builder, para *docs.Paragraph) {
	for _, pe := range para.Elements {
		if pe.TextRun != nil {
			text.WriteString(pe.TextRun.Content)
		}
	}
}

func extractTable(text *strings.Builder, table *docs.Table) {
	for _, row := range table.TableRows {
		for _, cell := range row.TableCells {
			for _, element := range cell.Content {
				extractElement(text, element)
			}
		}
	}
}
