package main

import (
	"context"
	"fmt"
	"log"

	docopt "github.com/docopt/docopt-go"

	"github.com/TFMV/surrealmetrics"
	"github.com/TFMV/surrealmetrics/db"
	"github.com/TFMV/surrealmetrics/types"
)

const usage = `surrealmetrics - complexity metrics for Go source trees.

Usage:
  surrealmetrics [--dir=<dir>] [--newmi] [--forin] [--no-logicalor] [--no-switchcase] [--store] [--db=<url>] [--namespace=<ns>] [--database=<name>] [--db-user=<user>] [--db-pass=<pass>]
  surrealmetrics -h | --help

Options:
  -h --help            Show this screen.
  --dir=<dir>          Directory to scan for Go files [default: .].
  --newmi              Rescale maintainability onto a 0-100 scale.
  --forin              Count range loops as decision points.
  --no-logicalor       Do not count || as a decision point.
  --no-switchcase      Do not count case clauses as decision points.
  --store              Persist reports to SurrealDB.
  --db=<url>           SurrealDB connection URL [default: ws://localhost:8000/rpc].
  --namespace=<ns>     SurrealDB namespace [default: test].
  --database=<name>    SurrealDB database [default: test].
  --db-user=<user>     SurrealDB username [default: root].
  --db-pass=<pass>     SurrealDB password [default: root].`

func main() {
	args, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	opts := types.DefaultOptions()
	if noLor, _ := args.Bool("--no-logicalor"); noLor {
		opts.LogicalOr = false
	}
	if noSwitch, _ := args.Bool("--no-switchcase"); noSwitch {
		opts.SwitchCase = false
	}
	opts.ForIn, _ = args.Bool("--forin")
	opts.NewMI, _ = args.Bool("--newmi")

	store, _ := args.Bool("--store")

	analyzer := surrealmetrics.New(opts)
	if store {
		url, _ := args.String("--db")
		namespace, _ := args.String("--namespace")
		database, _ := args.String("--database")
		user, _ := args.String("--db-user")
		pass, _ := args.String("--db-pass")

		analyzer, err = surrealmetrics.NewAnalyzer(db.Config{
			URL:       url,
			Namespace: namespace,
			Database:  database,
			Username:  user,
			Password:  pass,
		}, opts)
		if err != nil {
			log.Fatalf("Failed to create analyzer: %v", err)
		}
	}

	dir, _ := args.String("--dir")
	ctx := context.Background()
	reports, err := analyzer.AnalyzeDirectory(ctx, dir)
	if err != nil {
		log.Fatalf("Failed to analyze directory: %v", err)
	}

	fmt.Println(analyzer.Summarize(reports).PrettyPrint())

	if store {
		if err := analyzer.Initialize(ctx); err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := analyzer.StoreReports(ctx, reports); err != nil {
			log.Fatalf("Failed to store reports: %v", err)
		}
		fmt.Println("Reports stored successfully")
	}
}
