package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockmind-cli",
		Short: "BlockMind wallet engine CLI",
		Long:  `A command line interface for the BlockMind wallet aggregation API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet engine API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet views",
	}

	var (
		page      int
		pageSize  int
		direction string
		search    string
	)

	infoCmd := &cobra.Command{
		Use:   "info <address>",
		Short: "Show balance, stats, and recent transactions for a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallets/" + args[0] + pageQuery(page, pageSize, direction, search))
		},
	}
	infoCmd.Flags().IntVar(&page, "page", 1, "Page number")
	infoCmd.Flags().IntVar(&pageSize, "page-size", 25, "Page size")
	infoCmd.Flags().StringVar(&direction, "direction", "", "Filter direction: incoming or outgoing")
	infoCmd.Flags().StringVar(&search, "search", "", "Free-text search over hash and addresses")

	txsCmd := &cobra.Command{
		Use:   "txs <address>",
		Short: "Show one filtered page of a wallet's transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallets/" + args[0] + "/transactions" + pageQuery(page, pageSize, direction, search))
		},
	}
	txsCmd.Flags().IntVar(&page, "page", 1, "Page number")
	txsCmd.Flags().IntVar(&pageSize, "page-size", 25, "Page size")
	txsCmd.Flags().StringVar(&direction, "direction", "", "Filter direction: incoming or outgoing")
	txsCmd.Flags().StringVar(&search, "search", "", "Free-text search over hash and addresses")

	statsCmd := &cobra.Command{
		Use:   "stats <address>",
		Short: "Show lifetime stats for a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallets/" + args[0] + "/stats")
		},
	}

	walletCmd.AddCommand(infoCmd, txsCmd, statsCmd)

	trackedCmd := &cobra.Command{
		Use:   "tracked",
		Short: "Tracked wallet operations",
	}

	var label string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked wallets",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/tracked/")
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <address>",
		Short: "Start tracking a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/tracked/", map[string]string{"address": args[0], "label": label})
		},
	}
	addCmd.Flags().StringVar(&label, "label", "", "Display label for the wallet")

	removeCmd := &cobra.Command{
		Use:   "remove <address>",
		Short: "Stop tracking a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodDelete, "/api/v1/tracked/"+args[0], nil)
		},
	}

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Show the latest live snapshot per tracked wallet",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/tracked/snapshots")
		},
	}

	trackedCmd.AddCommand(listCmd, addCmd, removeCmd, snapshotsCmd)
	rootCmd.AddCommand(walletCmd, trackedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func pageQuery(page, pageSize int, direction, search string) string {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("page_size", fmt.Sprint(pageSize))
	if direction != "" {
		q.Set("direction", direction)
	}
	if search != "" {
		q.Set("search", search)
	}

	return "?" + q.Encode()
}

func getJSON(path string) {
	request(http.MethodGet, path, nil)
}

func postJSON(path string, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	request(http.MethodPost, path, strings.NewReader(string(raw)))
}

func request(method, path string, body io.Reader) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	if len(raw) == 0 {
		fmt.Println("OK")
		return
	}

	var pretty any
	if err := json.Unmarshal(raw, &pretty); err != nil {
		fmt.Println(string(raw))
		return
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
