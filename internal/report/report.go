package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sawpanic/propscore/internal/scoring"
)

// Format selects how a breakdown is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts text, json or csv. "auto" resolves to text when tty is
// true and JSON otherwise.
func ParseFormat(s string, tty bool) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		if tty {
			return FormatText, nil
		}
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, text, json or csv)", s)
	}
}

// Write renders b to w in the requested format.
func Write(w io.Writer, b *scoring.Breakdown, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, b)
	case FormatText:
		return WriteText(w, b)
	case FormatCSV:
		return WriteCSV(w, b)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteJSON writes b as indented JSON.
func WriteJSON(w io.Writer, b *scoring.Breakdown) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// WriteText writes a fixed-width table with one row per factor.
func WriteText(w io.Writer, b *scoring.Breakdown) error {
	thin := strings.Repeat("─", 58)

	var sb strings.Builder
	fmt.Fprintf(&sb, "  %-13s %9s %9s %7s %13s\n", "Factor", "Raw", "Score", "Weight", "Contribution")
	fmt.Fprintf(&sb, "  %s\n", thin)
	for _, f := range scoring.AllFactors {
		p := b.Parts[f]
		mark := ""
		if p.Clamped {
			mark = " *"
		}
		fmt.Fprintf(&sb, "  %-13s %9.2f %9.2f %7.2f %13.2f%s\n",
			f, p.Raw, p.Score, p.Weight, p.Contribution, mark)
	}
	fmt.Fprintf(&sb, "  %s\n", thin)
	fmt.Fprintf(&sb, "  %s\n", TotalLine(b.Total))
	if anyClamped(b) {
		fmt.Fprintf(&sb, "  * clamped to [0, 100]\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteCSV writes one row per factor followed by a total row.
func WriteCSV(w io.Writer, b *scoring.Breakdown) error {
	writer := csv.NewWriter(w)

	header := []string{"Factor", "Raw", "Score", "Clamped", "Weight", "Contribution"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, f := range scoring.AllFactors {
		p := b.Parts[f]
		record := []string{
			string(f),
			formatFloat(p.Raw),
			formatFloat(p.Score),
			strconv.FormatBool(p.Clamped),
			formatFloat(p.Weight),
			formatFloat(p.Contribution),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	if err := writer.Write([]string{"total", "", "", "", "", formatFloat(b.Total)}); err != nil {
		return fmt.Errorf("failed to write CSV total: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// TotalLine is the one-line summary printed for a score.
func TotalLine(total float64) string {
	return fmt.Sprintf("Total Value-for-Money Score: %.2f", total)
}

func anyClamped(b *scoring.Breakdown) bool {
	for _, p := range b.Parts {
		if p.Clamped {
			return true
		}
	}
	return false
}
