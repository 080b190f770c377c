// Package export writes compiled rulesets as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/auslib/core/schedule"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "csv"}

// Write writes rulesets to w in the named format.
func Write(w io.Writer, format string, rulesets schedule.Rulesets) error {
	switch format {
	case "", "json":
		return WriteJSON(w, rulesets)
	case "csv":
		return WriteCSV(w, rulesets)
	default:
		return fmt.Errorf("unknown export format %q (known: %v)", format, Formats)
	}
}

// WriteJSON writes the rulesets to w as a JSON array ordered by name.
func WriteJSON(w io.Writer, rulesets schedule.Rulesets) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rulesets.Sorted())
}

// WriteCSV writes one line per breakpoint. kind is default, rule,
// winter_design_day or summer_design_day; days and dates are only set on
// rules.
func WriteCSV(w io.Writer, rulesets schedule.Rulesets) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ruleset", "profile", "kind", "days", "dates", "until", "value"}); err != nil {
		return err
	}
	write := func(rs, kind, days, dates string, p schedule.DayProfile) error {
		for _, bp := range p.Breakpoints {
			rec := []string{
				rs, p.Name, kind, days, dates,
				bp.Until.String(),
				strconv.FormatFloat(bp.Value, 'f', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}
	for _, rs := range rulesets.Sorted() {
		if err := write(rs.Name, "default", "", "", rs.Default); err != nil {
			return err
		}
		for _, r := range rs.Rules {
			dates := ""
			if r.Dates != nil {
				dates = r.Dates.String()
			}
			if err := write(rs.Name, "rule", r.Days.String(), dates, r.Profile); err != nil {
				return err
			}
		}
		if rs.WinterDesignDay != nil {
			if err := write(rs.Name, "winter_design_day", "", "", *rs.WinterDesignDay); err != nil {
				return err
			}
		}
		if rs.SummerDesignDay != nil {
			if err := write(rs.Name, "summer_design_day", "", "", *rs.SummerDesignDay); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
