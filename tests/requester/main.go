package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

type seedOrder struct {
	ID       string `json:"id"`
	VendorID string `json:"vendor_id"`
}

var statuses = []string{"in_progress", "fulfilled", "fulfilled", "cancelled"}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "service base url")
	seed := flag.String("seed", "seed.json", "seed file written by order-generator")
	flag.Parse()

	orders, err := loadOrders(*seed)
	if err != nil {
		fmt.Println("failed to load seed:", err)
		os.Exit(1)
	}

	for {
		// every request of a round targets the same order
		order := orders[rand.Intn(len(orders))]
		var wg sync.WaitGroup
		for range 1 + rand.Intn(10) {
			wg.Go(func() { doRequest(*baseURL, order) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func loadOrders(path string) ([]seedOrder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var orders []seedOrder
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("no orders in %s", path)
	}
	return orders, nil
}

func doRequest(baseURL string, order seedOrder) {
	status := statuses[rand.Intn(len(statuses))]
	body, _ := json.Marshal(map[string]string{"status": status})

	url := baseURL + "/orders/" + order.ID + "/status"
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", order.VendorID)
	req.Header.Set("X-Actor-Role", "vendor")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}
	resp.Body.Close()
	fmt.Println("PUT", url, status, "->", resp.Status)
}
