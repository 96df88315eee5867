package table

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
)

const SettingWidth = 34

// SettingsTable prints setting/value pairs as a borderless two column table.
type SettingsTable struct {
	table *tablewriter.Table
}

// NewSettingsTable writes to w, stdout when nil. The header defaults to
// Setting/Value.
func NewSettingsTable(w io.Writer, header ...string) *SettingsTable {
	if w == nil {
		w = os.Stdout
	}
	if len(header) != 2 {
		header = []string{"Setting", "Value"}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return &SettingsTable{table: table}
}

func (st *SettingsTable) AddSetting(name, value string) {
	st.table.Append([]string{
		truncate(name, SettingWidth),
		value,
	})
}

func (st *SettingsTable) Render() {
	st.table.Render()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
