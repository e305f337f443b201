package style

import (
	"fmt"

	"github.com/matzehuels/venn/pkg/core/label"
)

// Label is the resolved presentation of one label.
type Label struct {
	Text     string
	FontSize float64
	Color    string
	Hidden   bool
}

// Resolve returns the presentation of the label with anchor a, whose region
// has the given size. size is ignored for set labels.
func (c Config) Resolve(a label.Anchor, size float64) Label {
	l := Label{Color: c.LabelColor}
	switch a.Kind {
	case label.KindSet:
		l.FontSize = c.SetFontSize
		l.Text = a.ID
		if len(a.ID) == 1 {
			if i := int(a.ID[0]) - 'A'; i >= 0 && i < len(c.SetLabels) {
				l.Text = c.SetLabels[i]
			}
		}
	default:
		l.FontSize = c.SubsetFontSize
		l.Text = fmt.Sprintf(c.LabelFormat, size)
	}

	o, ok := c.Overrides[a.ID]
	if !ok {
		return l
	}
	if o.FontSize > 0 {
		l.FontSize = o.FontSize
	}
	if o.Color != "" {
		l.Color = o.Color
	}
	if o.Text != "" {
		l.Text = o.Text
	}
	l.Hidden = o.Hidden
	return l
}
