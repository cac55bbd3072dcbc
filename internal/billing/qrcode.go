package billing

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"marigold-suites/internal/domain"
)

type QRGenerator interface {
	Generate(invoice domain.Invoice) ([]byte, error)
}

// DefaultQRGenerator encodes a payment link for the invoice as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(invoice domain.Invoice) ([]byte, error) {
	qrData := fmt.Sprintf("%s/pay.html?invoice_id=%s&amount=%.2f", g.BaseURL, invoice.InvoiceID, invoice.TotalAmount)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
