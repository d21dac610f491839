package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"invoicing/internal/domain/entities"
	"invoicing/internal/domain/richtext"
	"invoicing/internal/usecase/interfaces"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type rgb struct{ r, g, b int }

var (
	colorDeep    = rgb{0x0a, 0x0f, 0x1a}
	colorHorizon = rgb{0x2d, 0x4a, 0x6f}
	colorSunrise = rgb{0xf4, 0xa2, 0x61}
	colorMist    = rgb{0x52, 0x61, 0x6b}
	colorRule    = rgb{0xe0, 0xe0, 0xe0}
	colorPanel   = rgb{0xf8, 0xf9, 0xfa}
	colorPaid    = rgb{51, 204, 102}
)

const (
	pageWidth    = 8.5
	margin       = 0.75
	contentWidth = pageWidth - 2*margin
	qrSize       = 1.0
	qrPixels     = 256
)

type Option func(*Renderer)

// WithCompression toggles stream compression. Uncompressed output keeps
// the page text greppable.
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

// Renderer draws invoice layouts with fpdf on a Letter page.
type Renderer struct {
	compress bool
	logger   *zap.Logger
}

var _ interfaces.IInvoiceRenderer = (*Renderer)(nil)

func NewRenderer(logger *zap.Logger, opts ...Option) *Renderer {
	r := &Renderer{compress: true, logger: logger.Named("pdf")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Render(ctx context.Context, snapshot entities.InvoiceSnapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout := Compose(snapshot)

	doc := fpdf.New("P", "in", "Letter", "")
	doc.SetCompression(r.compress)
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle("Invoice "+snapshot.InvoiceID, true)
	doc.SetAuthor(layout.Header.CompanyName, true)
	if !snapshot.IssuedAt.IsZero() {
		doc.SetCreationDate(snapshot.IssuedAt)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	if layout.Watermark != "" {
		doc.SetFooterFunc(func() { drawWatermark(doc, tr(layout.Watermark)) })
	}
	doc.AddPage()

	w := &writer{doc: doc, tr: tr}
	w.header(layout.Header)
	w.billTo(layout.BillTo)
	w.services(layout.Service)
	w.details(layout.Details)
	w.totals(layout.Totals)
	if layout.Payment != nil {
		if err := w.payment(*layout.Payment); err != nil {
			return nil, err
		}
	}
	w.footer(layout.Thanks, layout.Signature)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	r.logger.Debug("invoice rendered",
		zap.String("invoice_id", snapshot.InvoiceID),
		zap.Int("bytes", buf.Len()),
		zap.Bool("paid", layout.Watermark != ""),
	)
	return buf.Bytes(), nil
}

func drawWatermark(doc *fpdf.Fpdf, text string) {
	const cx, cy = pageWidth / 2, 7.0
	doc.SetFont("Helvetica", "B", 72)
	doc.SetTextColor(colorPaid.r, colorPaid.g, colorPaid.b)
	doc.SetAlpha(0.25, "Normal")
	doc.TransformBegin()
	doc.TransformRotate(45, cx, cy)
	doc.Text(cx-doc.GetStringWidth(text)/2, cy, text)
	doc.TransformEnd()
	doc.SetAlpha(1, "Normal")
}

type writer struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) font(style string, size float64, c rgb) {
	w.doc.SetFont("Helvetica", style, size)
	w.doc.SetTextColor(c.r, c.g, c.b)
}

func (w *writer) header(h Header) {
	doc := w.doc
	top := margin + 0.15
	left, right := 4.25, contentWidth-4.25

	doc.SetXY(margin, top)
	w.font("B", 18, colorHorizon)
	doc.CellFormat(left, 0.3, w.tr(h.CompanyName), "", 2, "L", false, 0, "")
	w.font("", 9, colorMist)
	if h.OwnerName != "" {
		doc.CellFormat(left, 0.17, w.tr(h.OwnerName), "", 2, "L", false, 0, "")
	}
	if h.Contact != "" {
		doc.CellFormat(left, 0.17, w.tr(h.Contact), "", 2, "L", false, 0, "")
	}
	leftBottom := doc.GetY()

	doc.SetXY(margin+left, top)
	w.font("B", 28, colorSunrise)
	doc.CellFormat(right, 0.45, "INVOICE", "", 2, "R", false, 0, "")
	w.font("B", 9, colorMist)
	doc.CellFormat(right, 0.16, w.tr(h.InvoiceID), "", 2, "R", false, 0, "")
	w.font("", 9, colorMist)
	for _, line := range []string{"Date: " + h.IssuedDate, "Service: " + h.ServiceDate, "Status: " + h.Status} {
		doc.CellFormat(right, 0.16, w.tr(line), "", 2, "R", false, 0, "")
	}

	doc.SetXY(margin, max(leftBottom, doc.GetY())+0.3)
}

func (w *writer) section(title string) {
	w.doc.Ln(0.1)
	w.font("B", 11, colorHorizon)
	w.doc.CellFormat(contentWidth, 0.25, title, "", 1, "L", false, 0, "")
}

func (w *writer) billTo(lines []string) {
	w.section("BILL TO")
	w.font("", 10, colorDeep)
	for _, line := range lines {
		w.doc.CellFormat(contentWidth, 0.2, w.tr(line), "", 1, "L", false, 0, "")
	}
	w.doc.Ln(0.2)
}

func (w *writer) services(s ServiceLine) {
	doc := w.doc
	widths := []float64{3.5, 1, 1.25, 1.25}
	aligns := []string{"L", "R", "R", "R"}

	w.section("SERVICES")
	doc.SetFillColor(colorHorizon.r, colorHorizon.g, colorHorizon.b)
	w.font("B", 10, rgb{255, 255, 255})
	for i, title := range []string{"Description", "Hours", "Rate", "Amount"} {
		doc.CellFormat(widths[i], 0.4, title, "", 0, aligns[i], true, 0, "")
	}
	doc.Ln(-1)

	w.font("", 10, colorDeep)
	for i, v := range []string{s.Description, s.Hours, s.Rate, s.Amount} {
		doc.CellFormat(widths[i], 0.4, w.tr(v), "", 0, aligns[i], false, 0, "")
	}
	doc.Ln(-1)

	doc.Ln(0.08)
	doc.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	doc.SetLineWidth(0.007)
	y := doc.GetY()
	doc.Line(margin, y, margin+contentWidth, y)
	doc.Ln(0.1)
}

func (w *writer) details(blocks []richtext.Block) {
	doc := w.doc
	const lineHeight = 0.17
	const indent = 0.11

	for _, b := range blocks {
		switch b.Kind {
		case richtext.KindBreak:
			doc.Ln(lineHeight / 2)
			continue
		case richtext.KindBullet:
			w.runs(indent, "•  ", b.Runs, lineHeight)
		case richtext.KindNumbered:
			w.runs(indent, strconv.Itoa(b.Number)+". ", b.Runs, lineHeight)
		default:
			w.runs(indent, "", b.Runs, lineHeight)
		}
	}
	doc.Ln(0.12)
}

// runs writes one flowing line of mixed bold and regular text.
func (w *writer) runs(indent float64, prefix string, runs []richtext.Run, h float64) {
	doc := w.doc
	doc.SetLeftMargin(margin + indent)
	doc.SetX(margin + indent)
	if prefix != "" {
		w.font("", 10, colorDeep)
		doc.Write(h, w.tr(prefix))
	}
	for _, r := range runs {
		style := ""
		if r.Bold {
			style = "B"
		}
		w.font(style, 10, colorDeep)
		doc.Write(h, w.tr(r.Text))
	}
	doc.Ln(h)
	doc.SetLeftMargin(margin)
}

func (w *writer) totals(lines []TotalLine) {
	doc := w.doc
	const labelW, valueW = 1.5, 1.25
	x := margin + contentWidth - labelW - valueW

	for i, line := range lines {
		last := i == len(lines)-1
		doc.SetX(x)
		if last {
			doc.SetDrawColor(colorSunrise.r, colorSunrise.g, colorSunrise.b)
			doc.SetLineWidth(0.028)
			y := doc.GetY()
			doc.Line(x, y, x+labelW+valueW, y)
			w.font("B", 12, colorSunrise)
		} else {
			w.font("", 10, colorMist)
		}
		doc.CellFormat(labelW, 0.3, line.Label, "", 0, "R", false, 0, "")
		doc.CellFormat(valueW, 0.3, line.Value, "", 1, "R", false, 0, "")
	}
}

func (w *writer) payment(p PaymentBox) error {
	doc := w.doc
	qr, err := qrcode.New(p.URL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode payment qr: %w", err)
	}
	qr.ForegroundColor = color.RGBA{R: uint8(colorHorizon.r), G: uint8(colorHorizon.g), B: uint8(colorHorizon.b), A: 0xff}
	png, err := qr.PNG(qrPixels)
	if err != nil {
		return fmt.Errorf("encode payment qr: %w", err)
	}

	const boxH = qrSize + 0.3
	doc.Ln(0.4)
	if doc.GetY()+boxH > 11-margin {
		doc.AddPage()
	}
	top := doc.GetY()
	doc.SetFillColor(colorPanel.r, colorPanel.g, colorPanel.b)
	doc.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	doc.SetLineWidth(0.014)
	doc.Rect(margin, top, contentWidth, boxH, "FD")

	doc.SetXY(margin+0.15, top+0.3)
	w.font("B", 11, colorHorizon)
	doc.CellFormat(5.2, 0.22, "PAY ONLINE", "", 2, "L", false, 0, "")
	w.font("", 9, colorMist)
	doc.CellFormat(5.2, 0.2, "Scan the QR code or visit:", "", 2, "L", false, 0, "")
	w.font("", 8, colorHorizon)
	doc.MultiCell(5.2, 0.15, p.URL, "", "L", false)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(png))
	doc.ImageOptions("payment-qr", margin+contentWidth-qrSize-0.15, top+0.15, qrSize, qrSize, false, opts, 0, p.URL)

	doc.SetXY(margin, top+boxH)
	return doc.Error()
}

func (w *writer) footer(thanks, signature string) {
	doc := w.doc
	doc.Ln(0.6)
	w.font("", 10, colorHorizon)
	doc.CellFormat(contentWidth, 0.2, thanks, "", 1, "C", false, 0, "")
	if signature != "" {
		w.font("", 9, colorMist)
		doc.CellFormat(contentWidth, 0.18, w.tr(signature), "", 1, "C", false, 0, "")
	}
}
