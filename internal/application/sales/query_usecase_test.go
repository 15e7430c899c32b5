package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/application/sales"
	"github.com/jhoicas/smart-inventory/internal/domain"
)

type fakeGenerator struct {
	got *dto.ReceiptResponse
	err error
}

func (g *fakeGenerator) GenerateReceiptPDF(_ context.Context, r *dto.ReceiptResponse) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestQuery_ListYReceipt(t *testing.T) {
	s := newStore(t)
	a := s.seedProduct(t, "Arroz", 10)
	b := s.seedProduct(t, "Frijol", 10)
	checkout := sales.NewCheckoutUseCase(s.runner)
	_, err := checkout.Checkout(context.Background(), sales.SaleBatch{BatchID: "F-1", Items: []sales.LineItem{
		line(a, 2, "1.50"), line(b, 1, "4.00"),
	}})
	require.NoError(t, err)

	q := sales.NewQueryUseCase(s.sales)

	list, err := q.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 20, list.Page.Limit)

	receipt, err := q.Receipt(context.Background(), "F-1")
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Arroz", receipt.Lines[0].ProductName)
	assert.Equal(t, "3.00", receipt.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "7.00", receipt.TotalAmount.StringFixed(2))
}

func TestQuery_ReceiptConInvoiceIDReutilizadoUsaLaFechaMasReciente(t *testing.T) {
	s := newStore(t)
	a := s.seedProduct(t, "Arroz", 10)
	checkout := sales.NewCheckoutUseCase(s.runner)
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)

	_, err := checkout.Checkout(context.Background(), sales.SaleBatch{BatchID: "F-9", Date: first, Items: []sales.LineItem{line(a, 2, "5")}})
	require.NoError(t, err)
	_, err = checkout.Checkout(context.Background(), sales.SaleBatch{BatchID: "F-9", Date: second, Items: []sales.LineItem{line(a, 1, "5")}})
	require.NoError(t, err)

	receipt, err := sales.NewQueryUseCase(s.sales).Receipt(context.Background(), "F-9")
	require.NoError(t, err)
	assert.Len(t, receipt.Lines, 2)
	assert.True(t, second.Equal(receipt.Date), "date = %s", receipt.Date)
	assert.Equal(t, "15.00", receipt.TotalAmount.StringFixed(2))
}

func TestQuery_ReceiptInexistente(t *testing.T) {
	s := newStore(t)
	q := sales.NewQueryUseCase(s.sales)

	_, err := q.Receipt(context.Background(), "F-404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReceipt_DownloadPDF(t *testing.T) {
	s := newStore(t)
	a := s.seedProduct(t, "Arroz", 10)
	_, err := sales.NewCheckoutUseCase(s.runner).Checkout(context.Background(), sales.SaleBatch{
		BatchID: "F 2/3", Items: []sales.LineItem{line(a, 1, "2")},
	})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := sales.NewReceiptUseCase(sales.NewQueryUseCase(s.sales), gen)

	pdf, filename, err := uc.DownloadPDF(context.Background(), "F 2/3")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "factura_F_2_3.pdf", filename)
	require.NotNil(t, gen.got)
	assert.Equal(t, "F 2/3", gen.got.InvoiceID)
}

func TestReceipt_ErrorDelGenerador(t *testing.T) {
	s := newStore(t)
	a := s.seedProduct(t, "Arroz", 10)
	_, err := sales.NewCheckoutUseCase(s.runner).Checkout(context.Background(), sales.SaleBatch{
		BatchID: "F-2", Items: []sales.LineItem{line(a, 1, "2")},
	})
	require.NoError(t, err)

	uc := sales.NewReceiptUseCase(sales.NewQueryUseCase(s.sales), &fakeGenerator{err: errors.New("fuente no encontrada")})

	_, _, err = uc.DownloadPDF(context.Background(), "F-2")
	assert.Error(t, err)
}
