package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"shanenterprises/layout"
	"shanenterprises/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateServiceBillPDF renders a bill's sections into a paginated A4
// PDF. Pagination is computed by the layout engine, not left to the
// browser, so table splits and continued headings come out the same on
// every run.
func GenerateServiceBillPDF(repo *repository.PDFRepository, billID int64) ([]byte, error) {
	profile, err := repo.GetProfileForPDF()
	if err != nil {
		return nil, err
	}

	bill, err := repo.GetBillForPDF(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}

	depotLines, err := repo.BillRepo.DepotLinesForBill(billID)
	if err != nil {
		return nil, err
	}

	blocks := BuildBillBlocks(profile, bill, depotLines)
	pages, err := layout.Paginate(blocks, PageWidth, PageHeight, layout.DefaultMetrics{})
	if err != nil {
		return nil, err
	}

	html, err := renderPages(pages)
	if err != nil {
		return nil, err
	}

	return printHTML(html)
}

// ---------------- HTML rendering ----------------

type paragraphView struct {
	Text  string
	Style template.CSS
}

type cellView struct {
	Text    string
	Rowspan int
	Skip    bool
	Style   template.CSS
	Width   float64
}

type tableView struct {
	Heading      string
	HeadingStyle template.CSS
	Header       []cellView
	Rows         [][]cellView
}

type blockView struct {
	Paragraph *paragraphView
	SpacerH   float64
	Table     *tableView
}

type pageView struct {
	Blocks []blockView
}

var billTemplate = template.Must(template.New("bill").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 30px; }
body { font-family: Arial, Helvetica, sans-serif; margin: 0; padding: 0; }
.bill-page { page-break-after: always; }
.bill-page:last-child { page-break-after: auto; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #000; padding: 4px; vertical-align: top; }
.heading { margin: 0 0 6px 0; }
p { margin: 0; }
</style>
</head>
<body>
{{range .Pages}}<div class="bill-page">
{{range .Blocks}}{{if .Paragraph}}<p style="{{.Paragraph.Style}}">{{.Paragraph.Text}}</p>
{{else if .Table}}{{if .Table.Heading}}<div class="heading" style="{{.Table.HeadingStyle}}">{{.Table.Heading}}</div>{{end}}<table>
<tr>{{range .Table.Header}}<th style="width:{{.Width}}px;{{.Style}}">{{.Text}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}{{if not .Skip}}<td{{if gt .Rowspan 1}} rowspan="{{.Rowspan}}"{{end}} style="{{.Style}}">{{.Text}}</td>{{end}}{{end}}</tr>
{{end}}</table>
{{else}}<div style="height:{{.SpacerH}}px"></div>
{{end}}{{end}}</div>
{{end}}</body>
</html>`))

func styleCSS(s layout.Style) template.CSS {
	css := fmt.Sprintf("font-size:%.0fpx;", s.FontSize)
	if s.Bold {
		css += "font-weight:bold;"
	}
	switch s.Align {
	case layout.AlignCenter:
		css += "text-align:center;"
	case layout.AlignRight:
		css += "text-align:right;"
	}
	return template.CSS(css)
}

func buildTableView(t *layout.Table) *tableView {
	tv := &tableView{
		Heading:      t.HeadingText(),
		HeadingStyle: styleCSS(t.HeadingStyle),
	}
	for i, c := range t.Header.Cells {
		w := 0.0
		if i < len(t.Columns) {
			w = t.Columns[i]
		}
		tv.Header = append(tv.Header, cellView{Text: c.Text, Style: styleCSS(c.Style), Width: w})
	}
	for _, row := range t.Rows {
		var cells []cellView
		for _, c := range row.Cells {
			cells = append(cells, cellView{Text: c.Text, Style: styleCSS(c.Style)})
		}
		tv.Rows = append(tv.Rows, cells)
	}

	// Merge span columns: within a span, a leading cell whose
	// continuation cells are all blank spans the whole range.
	for _, s := range t.Spans {
		if s.Start < 0 || s.End >= len(tv.Rows) || s.End <= s.Start {
			continue
		}
		for col := range tv.Rows[s.Start] {
			blank := true
			for r := s.Start + 1; r <= s.End; r++ {
				if col >= len(t.Rows[r].Cells) || t.Rows[r].Cells[col].Text != "" {
					blank = false
					break
				}
			}
			if !blank {
				continue
			}
			tv.Rows[s.Start][col].Rowspan = s.End - s.Start + 1
			for r := s.Start + 1; r <= s.End; r++ {
				tv.Rows[r][col].Skip = true
			}
		}
	}
	return tv
}

func renderPages(pages []layout.Page) (string, error) {
	var views []pageView
	for _, p := range pages {
		var pv pageView
		for _, placed := range p.Blocks {
			switch b := placed.Block.(type) {
			case *layout.Paragraph:
				style := styleCSS(b.Style) + template.CSS(fmt.Sprintf("margin-bottom:%.0fpx;", b.SpaceAfter))
				pv.Blocks = append(pv.Blocks, blockView{Paragraph: &paragraphView{Text: b.Text, Style: style}})
			case *layout.Spacer:
				pv.Blocks = append(pv.Blocks, blockView{SpacerH: b.H})
			case *layout.Table:
				pv.Blocks = append(pv.Blocks, blockView{Table: buildTableView(b)})
			}
		}
		views = append(views, pv)
	}

	var buf bytes.Buffer
	if err := billTemplate.Execute(&buf, struct{ Pages []pageView }{Pages: views}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// printHTML drives headless Chrome: temp file, file:// navigation,
// PrintToPDF at A4.
func printHTML(html string) ([]byte, error) {
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "service_bill_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(html), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err := chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
