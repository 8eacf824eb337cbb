package main

import (
	"fmt"
	"os"

	"github.com/aglyzov/go-amt/strtab"
	"github.com/aglyzov/go-amt/trie"
)

func main() {
	words := []string{
		"arrow", "base", "bat", "case", "castle", "car", "card", "care", "cat",
		"cats", "can", "cape", "deer", "dear", "deep", "art", "article", "bar",
	}

	tables, err := strtab.Build(words)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(tables.Pointer.Outline())

	expr := tables.Pointer.SExpr()
	fmt.Printf("Serialize trie into S-expression:\n%s\n", expr)

	parsed, err := trie.ParseSExpr(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Unserialize:\n%v\n", parsed)

	fmt.Printf("\nBasic AMT (masks and edges in the same array):\n%s\n", tables.Flat.Outline())
	fmt.Println(tables.Flat.Stats())
	_ = tables.Flat.Dump(os.Stdout)

	fmt.Printf("\nAMT with separate mask and edge tables:\n%s\n", tables.Split.Outline())
	fmt.Println(tables.Split.Stats())
	_ = tables.Split.Dump(os.Stdout)

	for _, word := range []string{"cat", "cas", "case", "xxx", "deer"} {
		fmt.Printf("%-5s", word)
		for _, m := range tables.Matchers() {
			fmt.Printf(" %s:%v", m.Name, m.Contains(word))
		}
		fmt.Println()
	}

	if err := tables.Verify(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("OK")
}
