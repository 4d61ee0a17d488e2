package styles

import (
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/resolve"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const inherited = "-"

// SitesTable lists every site with an override or an exclusion. Stored values
// are shown as is; inherited ones as "-".
func SitesTable(s *entity.Settings) string {
	sites := s.Sites()
	for _, site := range s.ExcludeSites {
		if _, ok := s.SiteSettings[site]; !ok {
			sites = append(sites, site)
		}
	}
	if len(sites) == 0 {
		return ""
	}

	headers := []string{"Site", "Active", "Enabled", "Force", "Font size", "Spacing", "Line height", "Excluded"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(sites))
	for _, site := range sites {
		o := s.SiteSettings[site]
		view := resolve.ViewFor(s, site)
		rows = append(rows, []string{
			site,
			yesNo(view.Enabled),
			boolPtr(o.Enabled),
			boolPtr(o.Force),
			floatPtr(o.FontSize),
			floatPtr(o.Spacing),
			floatPtr(o.LineHeight),
			yesNo(view.IsExcluded),
		})
	}
	return renderTable(headers, rows, aligns)
}

// PagesTable lists open pages.
func PagesTable(pages []port.PageInfo) string {
	if len(pages) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, []string{string(p.ID), p.URL})
	}
	return renderTable([]string{"Page", "URL"}, rows, nil)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func boolPtr(b *bool) string {
	if b == nil {
		return inherited
	}
	return yesNo(*b)
}

func floatPtr(f *float64) string {
	if f == nil {
		return inherited
	}
	return FormatFloat(*f)
}

// FormatFloat prints a setting value with at most two decimals.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
