package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cycleboard/internal/contract"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
)

// FormatSession renders the current view, the filters it applies and the
// keys it accepts.
func FormatSession(v *contract.SessionView) string {
	var b strings.Builder

	views := make([]string, len(v.Views))
	for i, name := range v.Views {
		if name == v.View {
			views[i] = StyleGreen.Render("● " + name)
		} else {
			views[i] = Dim("○ " + name)
		}
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("session"), v.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("views  "), strings.Join(views, "  ")))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("keys   "), strings.Join(v.AvailableKeys, ", ")))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("active "), StyleBlue.Render(FormatCriteria(v.Criteria))))

	if len(v.Filters.Specific) > 0 {
		b.WriteString("\n" + Dim("stored per view:") + "\n")
		for _, name := range v.Views {
			bucket, ok := v.Filters.Specific[name]
			if !ok {
				continue
			}
			var parts []string
			for _, key := range viewstate.AllKeys {
				if vals, ok := bucket[string(key)]; ok {
					parts = append(parts, string(key)+"="+strings.Join(vals, ","))
				}
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", name, strings.Join(parts, " ")))
		}
	}

	return RenderBox("View", b.String())
}
