package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"t219/site/content"
)

func newSectionsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the catalog sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.log.Sync()
			return printSections(cmd.OutOrStdout(), e.cat)
		},
	}
}

func printSections(w io.Writer, cat *content.Catalog) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	secs := cat.All()
	rows := make([][]string, 0, len(secs))
	for i, s := range secs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.ID,
			s.Title,
			s.Accent.Hex(),
			s.PlainBody(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "TITLE", "ACCENT", "BODY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 3 {
				return cell.Foreground(lipgloss.Color(secs[row].Accent.Hex()))
			}
			return cell
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
