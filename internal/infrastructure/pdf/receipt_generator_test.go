package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0,00",
		"999":        "999",
		"25000":      "25.000",
		"1000000.5":  "1.000.000,5",
		"-1234.00":   "-1.234,00",
		"12345.6789": "12.345,6789",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	g := NewMarotoReceiptGenerator("Tienda Don Pepe")
	receipt := &dto.ReceiptResponse{
		InvoiceID: "F-0001",
		Date:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Lines: []dto.SaleResponse{
			{ProductName: "Arroz 1kg", Quantity: 2, Price: decimal.RequireFromString("3.50"), Subtotal: decimal.RequireFromString("7.00")},
		},
		TotalAmount: decimal.RequireFromString("7.00"),
	}

	out, err := g.GenerateReceiptPDF(context.Background(), receipt)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateReceiptPDF_Nil(t *testing.T) {
	_, err := NewMarotoReceiptGenerator("x").GenerateReceiptPDF(context.Background(), nil)
	assert.Error(t, err)
}
