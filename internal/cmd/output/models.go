package output

import (
	"io"
	"strconv"

	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/pins"
	"github.com/qisthidev/Antigravity-Manager/pkg/reconciler"
)

// ModelRecord is the serializable form of a reconciled entry.
type ModelRecord struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Group           string `json:"group" yaml:"group"`
	Icon            string `json:"icon" yaml:"icon"`
	Source          string `json:"source" yaml:"source"`
	CatalogKey      string `json:"catalog_key,omitempty" yaml:"catalog_key,omitempty"`
	MaxOutputTokens int    `json:"max_output_tokens" yaml:"max_output_tokens"`
	Percentage      *int   `json:"percentage,omitempty" yaml:"percentage,omitempty"`
}

// PinRecord is the serializable form of a pin editor option.
type PinRecord struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Desc     string `json:"desc" yaml:"desc"`
	Group    string `json:"group" yaml:"group"`
	Icon     string `json:"icon" yaml:"icon"`
	Selected bool   `json:"selected" yaml:"selected"`
	Orphaned bool   `json:"orphaned,omitempty" yaml:"orphaned,omitempty"`
}

// ModelList is the model listing result.
type ModelList []ModelRecord

// PinList is the pin editor listing result.
type PinList []PinRecord

// ModelRecords converts entries for output.
func ModelRecords(entries []reconciler.Entry) ModelList {
	records := make(ModelList, 0, len(entries))
	for _, e := range entries {
		r := ModelRecord{
			ID:              e.ID,
			Name:            e.Name,
			Group:           e.Group,
			Icon:            renderIcon(e.Icon),
			Source:          e.Source.String(),
			CatalogKey:      e.CatalogKey,
			MaxOutputTokens: e.MaxOutputTokens(),
		}
		if e.Quota != nil {
			pct := e.Quota.Percentage
			r.Percentage = &pct
		}
		records = append(records, r)
	}
	return records
}

// PinRecords converts options for output.
func PinRecords(opts []pins.Option) PinList {
	records := make(PinList, 0, len(opts))
	for _, o := range opts {
		records = append(records, PinRecord{
			ID:       o.ID,
			Name:     o.Name,
			Desc:     o.Desc,
			Group:    o.Group,
			Icon:     renderIcon(o.Icon),
			Selected: o.Selected,
			Orphaned: o.Orphaned,
		})
	}
	return records
}

// Table lays out the models. Wide adds the icon, catalog key and remaining
// quota columns.
func (l ModelList) Table(wide bool) Data {
	headers := []string{"ID", "Name", "Group", "Source", "Max Output"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Icon", "Catalog Key", "Quota")
		align = append(align, AlignLeft, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(l))
	for _, r := range l {
		row := []string{r.ID, r.Name, r.Group, r.Source, strconv.Itoa(r.MaxOutputTokens)}
		if wide {
			quota := "-"
			if r.Percentage != nil {
				quota = strconv.Itoa(*r.Percentage) + "%"
			}
			row = append(row, r.Icon, orDash(r.CatalogKey), quota)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// Table lays out the options. Pinned rows are marked "*" and orphaned pins
// "!". Wide adds the description.
func (l PinList) Table(wide bool) Data {
	headers := []string{"", "ID", "Name", "Group"}
	align := []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Description")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(l))
	for _, r := range l {
		mark := ""
		switch {
		case r.Orphaned:
			mark = "!"
		case r.Selected:
			mark = "*"
		}
		row := []string{mark, r.ID, r.Name, r.Group}
		if wide {
			row = append(row, r.Desc)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// FormatModels writes entries to w in the given format.
func FormatModels(w io.Writer, format Format, entries []reconciler.Entry) error {
	return Write(w, format, ModelRecords(entries))
}

// FormatPinOptions writes pin options to w in the given format.
func FormatPinOptions(w io.Writer, format Format, opts []pins.Option) error {
	return Write(w, format, PinRecords(opts))
}

func renderIcon(icon catalogs.IconProvider) string {
	if icon == nil {
		return ""
	}
	return icon.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
