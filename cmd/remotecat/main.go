// cmd/remotecat/main.go
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"remotecompose/internal/compose"
	"remotecompose/internal/ingest"
	"remotecompose/internal/opcode"
	"remotecompose/internal/store"
)

const version = "0.1.0"

// Command aliases, same spirit as the alias table a language toolchain CLI
// keeps for its subcommands.
var commandAliases = map[string]string{
	"d": "decode",
	"s": "serve",
	"l": "ls",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Println("remotecat", version)
	case "--help", "-h", "help":
		showUsage()
	case "decode":
		runDecode(args[1:])
	case "serve":
		runServe(args[1:])
	case "ls":
		runList(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "remotecat: unknown command %q\n", args[0])
		showUsage()
		os.Exit(2)
	}
}

func showUsage() {
	fmt.Fprintln(os.Stderr, `usage: remotecat <command> [flags] [args]

commands:
  decode <path|->   decode a document and print its tree
  serve             accept documents over a WebSocket and persist them
  ls                list documents persisted by a prior "serve" run
  version           print version and exit`)
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	flat := fs.Bool("flat", false, "print the flat opcode stream instead of building the container tree")
	lenient := fs.Bool("lenient", false, "tolerate unclosed containers at end of stream")
	hexInput := fs.Bool("hex", false, "treat the input as a hex-encoded string instead of a path")
	fs.BoolVar(flat, "f", false, "shorthand for -flat")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: remotecat decode [-flat] [-lenient] [-hex] <path|->")
		os.Exit(2)
	}

	data, err := readInput(rest[0], *hexInput)
	if err != nil {
		fmt.Fprintln(os.Stderr, "remotecat:", err)
		os.Exit(1)
	}

	if *flat {
		ops, err := compose.ParseFlat(data)
		if err != nil {
			fmt.Fprintln(os.Stderr, "remotecat:", err)
			os.Exit(1)
		}
		printFlat(ops)
		return
	}

	var doc *compose.Document
	if *lenient {
		doc, err = compose.ParseLenient(data)
	} else {
		doc, err = compose.Parse(data)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "remotecat:", err)
		os.Exit(1)
	}
	printDocument(data, doc)
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8088", "address to listen on")
	dsn := fs.String("dsn", "remotecat.db", "storage DSN (sqlite path, or sqlite://, postgres://, mysql:// URL)")
	lenient := fs.Bool("lenient", false, "tolerate unclosed containers at end of stream")
	fs.Parse(args)

	st, err := store.Open(*dsn)
	if err != nil {
		log.Fatalf("remotecat: %v", err)
	}
	defer st.Close()

	srv := ingest.NewServer(*lenient)
	defer srv.Close()

	go func() {
		for {
			select {
			case doc, ok := <-srv.Decoded:
				if !ok {
					return
				}
				if err := st.Save(uuid.NewString(), doc.Document); err != nil {
					log.Printf("remotecat: save %s: %v", doc.ClientID, err)
				} else {
					log.Printf("remotecat: saved document from %s (%d root nodes)", doc.ClientID, len(doc.Document.Root))
				}
			case f, ok := <-srv.Failed:
				if !ok {
					return
				}
				log.Printf("remotecat: decode failed for %s: %v", f.ClientID, f.Err)
			}
		}
	}()

	http.Handle("/ws", srv)
	log.Printf("remotecat: listening on %s (storage %s)", *addr, *dsn)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("remotecat: %v", err)
	}
}

func runList(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	dsn := fs.String("dsn", "remotecat.db", "storage DSN (sqlite path, or sqlite://, postgres://, mysql:// URL)")
	fs.Parse(args)

	st, err := store.Open(*dsn)
	if err != nil {
		log.Fatalf("remotecat: %v", err)
	}
	defer st.Close()

	summaries, err := st.List()
	if err != nil {
		log.Fatalf("remotecat: %v", err)
	}
	for _, s := range summaries {
		fmt.Printf("%-36s  v%d.%d.%d  %s\n", s.ID, s.Major, s.Minor, s.Patch, s.DecodedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("%s documents\n", humanize.Comma(int64(len(summaries))))
}

func readInput(arg string, isHex bool) ([]byte, error) {
	var raw []byte
	var err error
	if arg == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else if isHex {
		raw = []byte(arg)
	} else {
		raw, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, err
	}
	if isHex {
		cleaned := strings.TrimSpace(string(raw))
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		return hex.DecodeString(cleaned)
	}
	return raw, nil
}

func printFlat(ops []*opcode.Operation) {
	for i, op := range ops {
		fmt.Printf("%4d  %s\n", i, op.Code.Name())
	}
	fmt.Printf("%s operations\n", humanize.Comma(int64(len(ops))))
}

func printDocument(raw []byte, doc *compose.Document) {
	fmt.Printf("RemoteCompose document, version %d.%d.%d\n", doc.Header.Major, doc.Header.Minor, doc.Header.Patch)
	fmt.Printf("decoded %s\n", humanize.Bytes(uint64(len(raw))))
	for key, meta := range doc.Header.Metadata {
		fmt.Printf("  metadata[%d] = %+v\n", key, meta)
	}
	fmt.Printf("root nodes: %d\n", len(doc.Root))
	for _, node := range doc.Root {
		printNode(node, 1)
	}
}

func printNode(op *opcode.Operation, depth int) {
	fmt.Printf("%s- %s\n", strings.Repeat("  ", depth), op.Code.Name())
	for _, m := range op.Modifiers {
		printNode(m, depth+1)
	}
	for _, c := range op.Children {
		printNode(c, depth+1)
	}
	for _, a := range op.Actions {
		printNode(a, depth+1)
	}
}
