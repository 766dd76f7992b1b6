package jobs

import (
	"context"
	"log"
	"strconv"

	"bookstore/internal/events"
	"bookstore/internal/repositories"
)

const (
	DefaultLowStockThreshold = 5
	lowStockScanLimit        = 200

	LowStockEvent = "product.low_stock"
)

type StockAlert struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
	// Oversold is set when concurrent orders drove stock below zero.
	Oversold bool `json:"oversold"`
}

// StockAlertService reports books whose stock is running out.
type StockAlertService struct {
	productRepo repositories.ProductRepository
	publisher   events.Publisher
	threshold   int
}

func NewStockAlertService(productRepo repositories.ProductRepository, publisher events.Publisher, threshold int) *StockAlertService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &StockAlertService{
		productRepo: productRepo,
		publisher:   publisher,
		threshold:   threshold,
	}
}

func (a *StockAlertService) CheckLowStock(ctx context.Context) ([]StockAlert, error) {
	products, err := a.productRepo.LowStock(ctx, a.threshold, lowStockScanLimit)
	if err != nil {
		log.Printf("Failed to list low stock products: %v", err)
		return nil, err
	}

	alerts := make([]StockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, StockAlert{
			ProductID:    p.ID,
			ProductName:  p.ProductName,
			CurrentStock: p.Quantity,
			Threshold:    a.threshold,
			Oversold:     p.Quantity < 0,
		})
	}
	return alerts, nil
}

func (a *StockAlertService) LogLowStockAlerts(alerts []StockAlert) {
	if len(alerts) == 0 {
		log.Println("No low stock alerts to log")
		return
	}

	log.Printf("Low stock alerts (%d products):", len(alerts))
	for _, alert := range alerts {
		if alert.Oversold {
			log.Printf("- OVERSOLD '%s' (id %d) is at %d units", alert.ProductName, alert.ProductID, alert.CurrentStock)
			continue
		}
		log.Printf("- Product '%s' (id %d) has %d units (threshold: %d)",
			alert.ProductName, alert.ProductID, alert.CurrentStock, alert.Threshold)
	}
}

// ScheduledLowStockCheck logs and publishes an event for every low stock product.
func (a *StockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	log.Println("Starting scheduled low stock check")

	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Scheduled low stock check failed: %v", err)
		return err
	}
	a.LogLowStockAlerts(alerts)

	for _, alert := range alerts {
		if err := a.publisher.Publish(ctx, LowStockEvent, strconv.FormatInt(alert.ProductID, 10), alert); err != nil {
			log.Printf("Failed to publish low stock alert for product %d: %v", alert.ProductID, err)
		}
	}

	log.Println("Scheduled low stock check completed successfully")
	return nil
}
