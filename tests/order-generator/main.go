package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/handler"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Item struct {
	OfferingID string `json:"offering_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

type Order struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	CustomerID string    `json:"customer_id"`
	VendorID   string    `json:"vendor_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

var vendors = []string{"vendor_alpha", "vendor_beta", "vendor_gamma"}

var statuses = []string{"in_progress", "fulfilled", "cancelled"}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateRandomOrder(i int) Order {
	items := make([]Item, 1+rand.Intn(3))
	for j := range items {
		items[j] = Item{
			OfferingID: "offering_" + randomString(6),
			Name:       "Item " + randomString(5),
			UnitPrice:  int64(rand.Intn(5000) + 100),
			Quantity:   1 + rand.Intn(3),
		}
	}
	return Order{
		ID:         uuid.NewString(),
		Number:     fmt.Sprintf("ORD-%06d", i),
		CustomerID: "customer_" + randomString(5),
		VendorID:   vendors[rand.Intn(len(vendors))],
		Items:      items,
		CreatedAt:  time.Now().UTC().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
	}
}

func main() {
	count := flag.Int("n", 100, "number of orders to generate")
	out := flag.String("out", "seed.json", "seed file for the memory backend")
	broker := flag.String("broker", "", "kafka broker; when set, status commands are produced for the seeded orders")
	topic := flag.String("topic", "order-status-commands", "command topic")
	flag.Parse()

	orders := make([]Order, *count)
	for i := range orders {
		orders[i] = generateRandomOrder(i + 1)
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Println("seed file written", *out, len(orders))

	if *broker == "" {
		return
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(*broker),
		Topic:    *topic,
		Balancer: &kafka.Hash{},
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			order := orders[rand.Intn(len(orders))]
			cmd := handler.StatusCommand{
				OrderID:   order.ID,
				ActorID:   order.VendorID,
				ActorRole: "vendor",
				Status:    statuses[rand.Intn(len(statuses))],
			}
			data, _ := json.Marshal(cmd)
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(order.ID), Value: data}); err != nil {
				log.Println("failed to write command", err)
				continue
			}
			log.Println("command produced", cmd.OrderID, cmd.Status)
		case <-ctx.Done():
			return
		}
	}
}
