package main

import (
	"context"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/aglyzov/go-amt/internal/cmdlogger"
	"github.com/aglyzov/go-amt/strtab"
)

func statsCommand(stdout io.Writer, handler *cmdlogger.Handler) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "prints the sizes of every representation of a dictionary",
		Flags: commonFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, handler)
			if err != nil {
				return err
			}

			tables, err := buildTables(cfg)
			if err != nil {
				return err
			}

			printStats(stdout, tables.Stats())

			return nil
		},
	}
}

func printStats(w io.Writer, st strtab.Stats) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Representation", "Nodes", "Masks", "Edges", "Bytes"})
	tw.AppendRows([]table.Row{
		{"pointer trie", st.PointerNodes, "", "", ""},
		{"bitmap trie", st.BitmapNodes, "", "", ""},
		{"flat amt", "", "", "", st.FlatBytes},
		{"split amt", "", st.Masks, st.Edges, st.SplitBytes},
	})
	tw.AppendFooter(table.Row{"words", st.Words, "", "", ""})
	tw.Render()
}
