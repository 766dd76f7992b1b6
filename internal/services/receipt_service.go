package services

import (
	"bytes"
	"context"
	"fmt"

	"bookstore/internal/models"

	"github.com/jung-kurt/gofpdf"
)

var deliveryLabels = map[int]string{
	models.DeliveryPlaced:    "Placed",
	models.DeliveryConfirmed: "Confirmed",
	models.DeliveryShipping:  "Shipping",
	models.DeliveryCompleted: "Completed",
	models.DeliveryCancelled: "Cancelled",
}

// DeliveryLabel names a delivery status code.
func DeliveryLabel(delivered int) string {
	if label, ok := deliveryLabels[delivered]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%d)", delivered)
}

type ReceiptService interface {
	// Receipt renders the order and its lines as a PDF document.
	Receipt(ctx context.Context, orderID int64) ([]byte, error)
	// Render renders an already loaded order.
	Render(order *models.Order) ([]byte, error)
}

type receiptService struct {
	orders OrderServiceInterface
}

func NewReceiptService(orders OrderServiceInterface) ReceiptService {
	return &receiptService{orders: orders}
}

func (s *receiptService) Receipt(ctx context.Context, orderID int64) ([]byte, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return RenderReceipt(order)
}

func (s *receiptService) Render(order *models.Order) ([]byte, error) {
	return RenderReceipt(order)
}

// RenderReceipt lays out the receipt. The total printed is the stored order total.
func RenderReceipt(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "BOOKSTORE ORDER RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order #%d", order.ID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Order Date: %s", order.OrderDate.Format("02-Jan-2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", DeliveryLabel(order.Delivered)))
	pdf.Ln(13)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "SHIP TO:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(order.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(order.Address))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Phone: "+order.Phone)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	headers := []string{"Book", "Qty", "Price", "Amount"}
	colWidths := []float64{90, 20, 30, 30}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, line := range order.OrderDetails {
		name := line.ProductName
		if name == "" {
			name = fmt.Sprintf("Product #%d", line.ProductID)
		}
		pdf.CellFormat(colWidths[0], 8, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%d", line.Price*int64(line.Quantity)), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%d", order.Total), "", 0, "R", false, 0, "")
	pdf.Ln(10)

	if order.Note != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr("Note: "+order.Note), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
