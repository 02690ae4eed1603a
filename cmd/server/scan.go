package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hazyhaar/touchstone-ocr/pkg/ingest"
	"github.com/hazyhaar/touchstone-ocr/pkg/ocr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type scanFlags struct {
	encoding  string
	table     bool
	noCorrect bool
}

func newScanCmd(a *app) *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Recognize every entry of one or more scan files (\"-\" reads stdin)",
		Long: `scan prints one report line per entry: the account number, followed by
" ILL" when a digit is illegible or " ERR" when the checksum fails. When the
correction search finds a unique fix it is printed in a second,
tab-separated column; "ambiguous" marks entries with several fixes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := a.cfg.Encoding
			if f.encoding != "" {
				enc = f.encoding
			}
			scanner := a.scanner(a.cfg.Correction.Enabled && !f.noCorrect)

			var rows []scanRow
			var failed int
			for _, path := range args {
				fileRows, n, err := scanFile(path, enc, scanner, cmd.InOrStdin(), cmd.ErrOrStderr())
				rows = append(rows, fileRows...)
				failed += n
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if f.table {
				renderTable(out, rows)
			} else {
				for _, r := range rows {
					fmt.Fprintln(out, r.report())
				}
			}

			a.logger.Debug("scan complete", "entries", len(rows), "malformed", failed)
			if failed > 0 {
				return fmt.Errorf("%d malformed entries", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "character set of the scan files (overrides config)")
	cmd.Flags().BoolVar(&f.table, "table", false, "print a table instead of report lines")
	cmd.Flags().BoolVar(&f.noCorrect, "no-correct", false, "skip the correction search")
	return cmd
}

// scanRow is one recognized entry with where it came from.
type scanRow struct {
	source string
	line   int
	result *ocr.Result
}

func (r scanRow) report() string {
	if col := correctionColumn(r.result.Correction); col != "" {
		return r.result.Report + "\t" + col
	}
	return r.result.Report
}

func correctionColumn(c *ocr.Correction) string {
	if c == nil {
		return ""
	}
	if account, ok := c.Corrected(); ok {
		return account.String()
	}
	if c.Resolution == ocr.Ambiguous {
		return "ambiguous"
	}
	return ""
}

// scanFile recognizes every block of one file. Malformed entries are
// reported on errOut and counted; a broken block layout stops the file.
func scanFile(path, encoding string, scanner *ocr.Scanner, stdin io.Reader, errOut io.Writer) ([]scanRow, int, error) {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, fmt.Errorf("open scan file: %w", err)
		}
		defer f.Close()
		in = f
	}

	r, err := ingest.NewReader(in, ingest.Options{Encoding: encoding})
	if err != nil {
		return nil, 0, err
	}

	var rows []scanRow
	var failed int
	for {
		block, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows, failed, nil
		}
		if err != nil {
			return rows, failed, fmt.Errorf("%s: %w", path, err)
		}

		res, err := scanner.Scan(block.Text)
		if err != nil {
			fmt.Fprintf(errOut, "%s:%d: %v\n", path, block.Line, err)
			failed++
			continue
		}
		rows = append(rows, scanRow{source: path, line: block.Line, result: res})
	}
}

func renderTable(w io.Writer, rows []scanRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source", "Line", "Account", "Status", "Correction", "Alternatives"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	counts := make(map[ocr.Status]int)
	for _, r := range rows {
		res := r.result
		counts[res.Status]++

		var alts []string
		if res.Correction != nil {
			for _, a := range res.Correction.Alternatives {
				alts = append(alts, a.String())
			}
		}
		table.Append([]string{
			r.source,
			strconv.Itoa(r.line),
			res.Account.String(),
			res.Status.String(),
			correctionColumn(res.Correction),
			strings.Join(alts, " "),
		})
	}

	table.SetFooter([]string{
		"", "",
		fmt.Sprintf("Total %d", len(rows)),
		fmt.Sprintf("%d ILL / %d ERR", counts[ocr.Illegible], counts[ocr.ChecksumError]),
		"", "",
	})
	table.Render()
}
