package console

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// styles colors console messages. The zero value renders plain text.
type styles struct {
	color   bool
	title   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	border  lipgloss.Style
}

func newStyles(out io.Writer, color bool) styles {
	if !color {
		return styles{}
	}
	r := lipgloss.NewRenderer(out)
	return styles{
		color:   true,
		title:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		border:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// contactTable renders contacts as a bordered table.
func (s styles) contactTable(contacts []*types.Contact) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Phone", "Email")
	if s.color {
		t = t.BorderStyle(s.border)
	}
	for _, c := range contacts {
		t = t.Row(strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.Email)
	}
	return t.Render()
}
