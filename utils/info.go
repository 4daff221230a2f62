package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/voxelsplace/voxkit/api"
	"github.com/voxelsplace/voxkit/vox"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// RunInfo decodes a .vox file and prints its summary to w.
// Styling is applied only when styled is set, normally when w is a terminal.
func RunInfo(inPath string, opts vox.Options, w io.Writer, styled bool) error {
	scene, err := vox.LoadVoxFile(inPath, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, FormatSummary(inPath, api.Summarize(scene), styled))
	return err
}

// FormatSummary renders s as a human readable report.
func FormatSummary(title string, s api.Summary, styled bool) string {
	render := func(st lipgloss.Style, v string) string {
		if !styled {
			return v
		}
		return st.Render(v)
	}
	line := func(b *strings.Builder, label, value string) {
		fmt.Fprintf(b, "%s %s\n", render(labelStyle, label+":"), render(valueStyle, value))
	}
	axis := "z-up"
	if s.YUp {
		axis = "y-up"
	}

	var b strings.Builder
	b.WriteString(render(titleStyle, title))
	b.WriteString("\n")
	line(&b, "version", fmt.Sprint(s.Version))
	line(&b, "axes", axis)
	line(&b, "palette", s.PaletteSource)
	line(&b, "materials", fmt.Sprintf("%d (%s)", len(s.Materials), s.MaterialsSource))
	line(&b, "models", fmt.Sprint(len(s.Models)))
	for i, m := range s.Models {
		fmt.Fprintf(&b, "  %s %dx%dx%d, %d voxels\n",
			render(dimStyle, fmt.Sprintf("#%d", i)), m.Size[0], m.Size[1], m.Size[2], m.Count)
	}
	for _, m := range s.Materials {
		fmt.Fprintf(&b, "  %s %s rough=%g ior=%g trans=%g metal=%g emit=%g\n",
			render(dimStyle, fmt.Sprintf("mat %d", m.ID)), m.Type, m.Roughness, m.IOR, m.Transparency, m.Metallic, m.Emission)
	}
	return b.String()
}
