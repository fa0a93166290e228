package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	actorID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "creditledger-cli",
		Short: "Credit ledger CLI tool",
		Long:  `A command line interface for operating the supplier credit ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the credit ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", "", "Actor ID recorded on mutations")

	supplierCmd := &cobra.Command{
		Use:   "supplier",
		Short: "Supplier ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency <supplier-id>",
		Short: "Check a supplier's balance against its transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency(args[0])
		},
	}

	recalculateCmd := &cobra.Command{
		Use:   "recalculate <supplier-id>",
		Short: "Enqueue a balance recalculation for a supplier",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			enqueue(args[0], "recalculate")
		},
	}

	backfillCmd := &cobra.Command{
		Use:   "backfill <supplier-id>",
		Short: "Enqueue a history backfill for a supplier without records",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			enqueue(args[0], "backfill")
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <supplier-id>",
		Short: "Show a supplier and its balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showSupplier(args[0])
		},
	}

	supplierCmd.AddCommand(consistencyCmd, recalculateCmd, backfillCmd, showCmd)
	rootCmd.AddCommand(supplierCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkConsistency(supplierID string) {
	body, status := get("/api/v1/suppliers/" + supplierID + "/consistency")

	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
	} else {
		fmt.Println("Consistency check FAILED: balance diverges from history")
	}
	fmt.Printf("Balance: %v\nRecord sum: %v\nDifference: %v\n", result["balance"], result["record_sum"], result["difference"])
}

func enqueue(supplierID, action string) {
	body, status := post("/api/v1/suppliers/" + supplierID + "/" + action)

	if status != http.StatusAccepted {
		fmt.Printf("Failed to enqueue %s (Status: %d)\nResponse: %s\n", action, status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Enqueued %s for supplier %s (task %v on queue %v)\n", action, supplierID, result["task_id"], result["queue"])
}

func showSupplier(supplierID string) {
	body, status := get("/api/v1/suppliers/" + supplierID)

	if status != http.StatusOK {
		fmt.Printf("Failed to get supplier (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Supplier: %v\nBalance: %v %v\n", result["name"], result["balance"], result["payment_currency"])
}

func get(path string) ([]byte, int) {
	return do(http.MethodGet, path)
}

func post(path string) ([]byte, int) {
	return do(http.MethodPost, path)
}

func do(method, path string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	if actorID != "" {
		req.Header.Set("X-Actor-Id", actorID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return body, resp.StatusCode
}
