package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/pkg/kit"
)

const usage = `usage: catalogctl [-url URL] <command> [args]

commands:
  list   [-sort name|section|subsection|coverage] [-limit N]
  search [-max N] <query>
  update [-section S] [-subsection S] [-coverage S] [-code1 C] [-code2 C] [-code3 C] <product name>
`

func main() {
	log, err := kit.NewLogger("catalogctl", getenv("LOG_LEVEL", "warn"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, apiErr.Message)
			os.Exit(1)
		}
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, args []string, stdout io.Writer) error {
	global := flag.NewFlagSet("catalogctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	baseURL := global.String("url", getenv("CATALOG_URL", "http://localhost:3000"), "catalog base URL")
	timeout := global.Duration("timeout", 3*time.Second, "request timeout")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		return errUsage
	}

	c := catalog.NewClient(*baseURL)
	c.HTTP.Timeout = *timeout

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "list":
		return runList(ctx, c, rest, stdout)
	case "search":
		return runSearch(ctx, c, rest, stdout)
	case "update":
		return runUpdate(ctx, c, rest, stdout)
	default:
		return errUsage
	}
}

func runList(ctx context.Context, c *catalog.Client, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sort := fs.String("sort", "", "sort field")
	limit := fs.Int("limit", -1, "max products")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := c.List(ctx, catalog.SortField(*sort), *limit)
	if err != nil {
		return err
	}
	return printJSON(stdout, res)
}

func runSearch(ctx context.Context, c *catalog.Client, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	maxResults := fs.Int("max", 0, "max results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	products, err := c.Search(ctx, fs.Arg(0), *maxResults)
	if err != nil {
		return err
	}
	return printJSON(stdout, products)
}

func runUpdate(ctx context.Context, c *catalog.Client, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		p   catalog.Patch
		ext catalog.ExtensionPatch
	)
	fs.Func("section", "new section", setter(&p.Section))
	fs.Func("subsection", "new subsection", setter(&p.Subsection))
	fs.Func("coverage", "new coverage", setter(&p.Coverage))
	fs.Func("code1", "new extension code1", setter(&ext.Code1))
	fs.Func("code2", "new extension code2", setter(&ext.Code2))
	fs.Func("code3", "new extension code3", setter(&ext.Code3))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	if ext.Code1 != nil || ext.Code2 != nil || ext.Code3 != nil {
		p.Extension = &ext
	}
	if p == (catalog.Patch{}) {
		return fmt.Errorf("no updates specified for product %s", fs.Arg(0))
	}

	res, err := c.UpdateByName(ctx, fs.Arg(0), p)
	if err != nil {
		return err
	}
	return printJSON(stdout, res)
}

func setter(dst **string) func(string) error {
	return func(v string) error {
		*dst = &v
		return nil
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
