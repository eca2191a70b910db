//go:build ignore

// Load test for a running go-kvgate server.
//
//	go run test_scripts/insert_records_load.go <number_of_records> [server_url] [collection]
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cliente represents the record posted on every request
type Cliente struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Edad   int    `json:"edad"`
	Email  string `json:"email"`
}

// generateRandomName generates a random 6-letter name
func generateRandomName(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 6)
	for i := range name {
		name[i] = letters[rng.Intn(len(letters))]
	}
	// Capitalize first letter
	name[0] = name[0] - 32
	return string(name)
}

// insertRecord sends a POST request to store one record
func insertRecord(client *http.Client, baseURL, collection string, rec Cliente) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	resp, err := client.Post(baseURL+"/"+collection, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// listCount asks the server how many records the collection holds
func listCount(client *http.Client, baseURL, collection string) (int, error) {
	resp, err := client.Get(baseURL + "/" + collection)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run test_scripts/insert_records_load.go <number_of_records> [server_url] [collection]")
		fmt.Println("Example: go run test_scripts/insert_records_load.go 1000")
		fmt.Println("Example: go run test_scripts/insert_records_load.go 1000 http://localhost:3000 clientes")
		os.Exit(1)
	}

	numRecords, err := strconv.Atoi(os.Args[1])
	if err != nil || numRecords <= 0 {
		fmt.Printf("Error: Invalid number of records '%s'. Please provide a positive integer.\n", os.Args[1])
		os.Exit(1)
	}

	serverURL := "http://localhost:3000"
	if len(os.Args) >= 3 {
		serverURL = strings.TrimRight(os.Args[2], "/")
	}
	collection := "load_clientes"
	if len(os.Args) >= 4 {
		collection = os.Args[3]
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	client := &http.Client{Timeout: 10 * time.Second}

	fmt.Printf("Starting load test: inserting %d records into '%s' on %s\n", numRecords, collection, serverURL)

	startTime := time.Now()
	successCount := 0
	errorCount := 0
	reportInterval := max(1, numRecords/10)

	for i := 0; i < numRecords; i++ {
		name := generateRandomName(rng)
		rec := Cliente{
			ID:     i + 1,
			Nombre: name,
			Edad:   rng.Intn(82) + 18,
			Email:  fmt.Sprintf("%s@example.com", strings.ToLower(name)),
		}

		if err := insertRecord(client, serverURL, collection, rec); err != nil {
			errorCount++
			fmt.Printf("Error inserting record %d (%s): %v\n", rec.ID, rec.Nombre, err)
		} else {
			successCount++
		}

		if (i+1)%reportInterval == 0 || i == numRecords-1 {
			elapsed := time.Since(startTime)
			rate := float64(i+1) / elapsed.Seconds()
			fmt.Printf("Progress: %d/%d records (%.1f%%) - Rate: %.1f records/sec - Success: %d, Errors: %d\n",
				i+1, numRecords, float64(i+1)/float64(numRecords)*100, rate, successCount, errorCount)
		}
	}

	totalTime := time.Since(startTime)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("LOAD TEST COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total records attempted: %d\n", numRecords)
	fmt.Printf("Successful inserts:      %d\n", successCount)
	fmt.Printf("Failed inserts:          %d\n", errorCount)
	fmt.Printf("Total time:              %v\n", totalTime)
	fmt.Printf("Average rate:            %.2f records/sec\n", float64(numRecords)/totalTime.Seconds())

	if count, err := listCount(client, serverURL, collection); err != nil {
		fmt.Printf("Could not list '%s': %v\n", collection, err)
	} else {
		fmt.Printf("Records listed in '%s': %d\n", collection, count)
	}

	if errorCount > 0 {
		fmt.Printf("\nWarning: %d errors occurred during the load test\n", errorCount)
		os.Exit(1)
	}
}
