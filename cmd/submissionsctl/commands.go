package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// kindSlugs are the entity kinds the admin API exposes.
var kindSlugs = map[string]bool{
	"registrations": true,
	"requirements":  true,
	"contacts":      true,
	"logs":          true,
}

var (
	listPage   int
	listLimit  int
	listSearch string
	exportOut  string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := newClient().getJSON("/healthz", &resp); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		fmt.Printf("status: %v\n", resp["status"])
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show submission counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Data struct {
				Registrations    int64 `json:"registrations"`
				Requirements     int64 `json:"requirements"`
				TotalSubmissions int64 `json:"total_submissions"`
			} `json:"data"`
		}
		if err := newClient().getJSON("/api/admin/stats", &resp); err != nil {
			return err
		}
		fmt.Printf("registrations: %d\n", resp.Data.Registrations)
		fmt.Printf("requirements:  %d\n", resp.Data.Requirements)
		fmt.Printf("total:         %d\n", resp.Data.TotalSubmissions)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List stored records (registrations, requirements, contacts, logs)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if !kindSlugs[kind] {
			return fmt.Errorf("unknown kind %q", kind)
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(listPage))
		q.Set("limit", strconv.Itoa(listLimit))
		if listSearch != "" {
			q.Set("search", listSearch)
		}

		var resp struct {
			Data       []map[string]any `json:"data"`
			Pagination struct {
				Page       int   `json:"page"`
				Total      int64 `json:"total"`
				TotalPages int   `json:"total_pages"`
			} `json:"pagination"`
		}
		if err := newClient().getJSON("/api/admin/"+kind+"?"+q.Encode(), &resp); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp.Data); err != nil {
			return err
		}
		fmt.Printf("page %d of %d (%d total)\n", resp.Pagination.Page, resp.Pagination.TotalPages, resp.Pagination.Total)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a stored record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if !kindSlugs[kind] {
			return fmt.Errorf("unknown kind %q", kind)
		}
		if _, err := strconv.ParseInt(args[1], 10, 64); err != nil {
			return fmt.Errorf("id must be an integer: %q", args[1])
		}

		var resp map[string]any
		if err := newClient().delete("/api/admin/"+kind+"/"+args[1], &resp); err != nil {
			return err
		}
		fmt.Printf("%v\n", resp["message"])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <kind>",
	Short: "Download a full export of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if !kindSlugs[kind] {
			return fmt.Errorf("unknown kind %q", kind)
		}

		data, filename, err := newClient().download("/api/admin/export/" + kind)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = filename
		}
		if out == "" {
			out = kind + ".xlsx"
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 25, "Page size (max 100)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search term")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default from server)")
}
