package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// printJSON は任意の値をインデント付きJSONで標準出力に書き出します。
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCSV はヘッダ行とデータ行をCSVで標準出力に書き出します。
func printCSV(header []string, rows [][]string) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// printTable はヘッダ行とデータ行をタブ区切りの表で標準出力に書き出します。
func printTable(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return w.Flush()
}

// renderRows は--formatフラグに従ってヘッダ行とデータ行を出力します。
// jsonはrenderJSONを、それ以外は表形式を使用します。
func renderRows(jsonValue any, header []string, rows [][]string) error {
	switch format {
	case "json":
		return printJSON(jsonValue)
	case "csv":
		return printCSV(header, rows)
	case "table":
		return printTable(header, rows)
	default:
		return fmt.Errorf("unknown format %q, expected table, json or csv", format)
	}
}
