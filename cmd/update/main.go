package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"investigator/adapters/history"
	"investigator/internal"
	"investigator/internal/config"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "status-data-updater",
		Short:        "List and patch tracked result documents in the search index",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newListCmd(),
		newChangeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newESClient() (*history.ESClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireElasticsearch(); err != nil {
		return nil, err
	}
	return history.NewESClient(cfg.Elasticsearch.Server, cfg.Elasticsearch.Index, internal.NewDefaultLogger()), nil
}

func newListCmd() *cobra.Command {
	var name string
	var size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent result documents for a test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newESClient()
			if err != nil {
				return err
			}
			return runList(cmd.Context(), client, name, size)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Test name to list results for")
	cmd.Flags().IntVar(&size, "size", 10, "How many documents to list")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runList(ctx context.Context, client *history.ESClient, name string, size int) error {
	hits, err := client.SearchByField(ctx, "name.keyword", name, size)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Run ID\tStarted\tOwner\tGolden\tResult")
	for _, hit := range hits {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			docField(hit, "id"),
			docField(hit, "started"),
			docField(hit, "owner"),
			docField(hit, "golden"),
			docField(hit, "result"))
	}
	return w.Flush()
}

func docField(hit history.Hit, name string) interface{} {
	value, ok := hit.Document.Get(name)
	if !ok {
		return ""
	}
	return value
}

func newChangeCmd() *cobra.Command {
	var id string
	var set []string
	var comment string

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Patch fields on one result document, with an audit comment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newESClient()
			if err != nil {
				return err
			}
			return runChange(cmd.Context(), client, id, set, comment)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Result document id to change")
	cmd.Flags().StringArrayVar(&set, "set", nil, "key=value pair to set (repeatable)")
	cmd.Flags().StringVar(&comment, "comment", "", "Audit comment text (default describes the change)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("set")

	return cmd
}

func runChange(ctx context.Context, client *history.ESClient, id string, set []string, comment string) error {
	hits, err := client.SearchByField(ctx, "id.keyword", id, 1)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return fmt.Errorf("no result document with id %s", id)
	}
	hit := hits[0]

	var applied []string
	for _, pair := range set {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, expected key=value", pair)
		}
		hit.Document.Set(key, coerce(value))
		applied = append(applied, pair)
	}

	if comment == "" {
		comment = "Setting " + strings.Join(applied, ", ")
	}
	author := os.Getenv("USER")
	if author == "" {
		author = "unknown"
	}
	hit.Document.AddComment(author, comment)

	if err := client.UpdateDocument(ctx, hit.ID, hit.Document); err != nil {
		return err
	}
	fmt.Printf("Updated document %s (%d fields)\n", id, len(applied))
	return nil
}

// coerce mirrors how values are typed in result documents: ints, then
// floats, then plain strings.
func coerce(value string) interface{} {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
