// Package grid defines the rendering surface the balance report is written
// to, and its CSV and XLSX implementations. Sheets accept each logical
// section in one bulk write; the sinks behind them (spreadsheet services,
// slow file stores) are far cheaper to drive that way than cell by cell.
package grid

// Cell is one rendered value. URL, when set, turns the cell into a
// hyperlink on surfaces that support it.
type Cell struct {
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// Document is a complete report ready for rendering.
type Document struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Header   []string `json:"header"`
	Rows     [][]Cell `json:"rows"`
	Totals   []Cell   `json:"totals"`
	Summary  string   `json:"summary"`
}

// Sheet renders a document onto one output surface.
type Sheet interface {
	Render(doc Document) error
}
