package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/jmoiron/sqlx"

	drill "github.com/factset/go-drill-rest"
	_ "github.com/factset/go-drill-rest/driver"
)

const usage = `Drill REST client.

Usage:
	drillrest schemas [options]
	drillrest objects SCHEMA [options]
	drillrest query SQL [options]
	drillrest -h | --help

Arguments:
	SCHEMA  full schema name, e.g. ora.BLUE or dfs.tmp
	SQL     the sql statement to run

Options:
	-h --help        Show this screen.
	--host HOSTS     Comma separated drillbit hostnames [default: localhost]
	--user USER      Username for the web server form login
	--pass PASS      Password for the web server form login
	--auth AUTH      Authentication mechanism (basic or kerberos)
	--service NAME   Kerberos service name of the drillbits
	--schema NAME    Default schema for queries
	--insecure       Skip TLS certificate verification
	--no-tls         Talk http instead of https`

type cmdOpts struct {
	Schemas bool   `docopt:"schemas"`
	Objects bool   `docopt:"objects"`
	Query   bool   `docopt:"query"`
	Schema  string `docopt:"SCHEMA"`
	SQL     string `docopt:"SQL"`

	Host     string `docopt:"--host"`
	User     string `docopt:"--user"`
	Pass     string `docopt:"--pass"`
	Auth     string `docopt:"--auth"`
	Service  string `docopt:"--service"`
	Default  string `docopt:"--schema"`
	Insecure bool   `docopt:"--insecure"`
	NoTLS    bool   `docopt:"--no-tls"`
}

func main() {
	parsed, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatal(err)
	}

	var opts cmdOpts
	if err := parsed.Bind(&opts); err != nil {
		log.Fatal(err)
	}

	switch {
	case opts.Query:
		runQuery(&opts)
	case opts.Schemas, opts.Objects:
		runMeta(&opts)
	}
}

func clientOptions(opts *cmdOpts) drill.Options {
	return drill.Options{
		User:                  opts.User,
		Password:              opts.Pass,
		Auth:                  opts.Auth,
		ServiceName:           opts.Service,
		DefaultSchema:         opts.Default,
		TLSInsecureSkipVerify: opts.Insecure,
		DisableTLS:            opts.NoTLS,
	}
}

func runMeta(opts *cmdOpts) {
	cl := drill.NewClient(clientOptions(opts), strings.Split(opts.Host, ",")...)
	ctx := context.Background()
	if err := cl.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	defer cl.Close()

	if opts.Schemas {
		schemas, err := cl.ListSchemas(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range schemas {
			fmt.Println(s)
		}
		return
	}

	objects, err := cl.ListObjects(ctx, opts.Schema)
	if err != nil {
		log.Fatal(err)
	}
	for _, obj := range objects {
		fmt.Printf("%-10s %s\n", obj.Type, obj.Name)
	}
}

func runQuery(opts *cmdOpts) {
	db, err := sqlx.Open("drill-rest", buildDSN(opts))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Queryx(opts.SQL)
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(strings.Join(cols, "\t"))

	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			log.Fatal(err)
		}

		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = fmt.Sprintf("%v", v)
		}
		fmt.Println(strings.Join(strs, "\t"))
	}

	if err := rows.Err(); err != nil {
		log.Fatal(err)
	}
}

func buildDSN(opts *cmdOpts) string {
	props := []string{"host=" + opts.Host}
	if opts.User != "" {
		props = append(props, "user="+opts.User, "pass="+opts.Pass)
	}
	if opts.Auth != "" {
		props = append(props, "auth="+opts.Auth)
	}
	if opts.Service != "" {
		props = append(props, "service="+opts.Service)
	}
	if opts.Default != "" {
		props = append(props, "schema="+opts.Default)
	}
	if opts.Insecure {
		props = append(props, "insecure-tls=true")
	}
	if opts.NoTLS {
		props = append(props, "disable-tls=true")
	}
	return strings.Join(props, ";")
}
