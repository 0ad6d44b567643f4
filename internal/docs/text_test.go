package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	docs "google.golang.org/api/docs/v1"
)

func paragraph(runs ...string) *docs.StructuralElement {
	para := &docs.Paragraph{}
	for _, run := range runs {
		para.Elements = append(para.Elements, &docs.ParagraphElement{
			TextRun: &docs.TextRun{Content: run},
		})
	}
	return &docs.StructuralElement{Paragraph: para}
}

func TestExtractText(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				paragraph("Title\n"),
				paragraph("First ", "sentence.\n"),
				{
					Table: &docs.Table{
						TableRows: []*docs.TableRow{
							{
								TableCells: []*docs.TableCell{
									{Content: []*docs.StructuralElement{paragraph("cell one\n")}},
									{Content: []*docs.StructuralElement{paragraph("cell two\n")}},
								},
							},
						},
					},
				},
			},
		},
	}

	got := ExtractText(doc)
	assert.Equal(t, "Title\nFirst sentence.\ncell one\ncell two\n", got)
}

func TestExtractTextEmpty(t *testing.T) {
	assert.Empty(t, ExtractText(nil))
	assert.Empty(t, ExtractText(&docs.Document{}))
	assert.Empty(t, ExtractText(&docs.Document{Body: &docs.Body{}}))
}
