package widgets

import (
	"strings"

	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// DefaultFont is the family labels use unless told otherwise.
const DefaultFont = "default"

type UILabel struct {
	ui.Leaf
	Common[*UILabel]
	text      string
	family    string
	fontSize  float32
	color     colors.Color
	wrap      bool
	maxWidth  float32
	font      ui.GlyphLayout
	layoutStr string
	content   geom.Size
}

func Label(str string) *UILabel {
	l := &UILabel{text: str, family: DefaultFont, fontSize: 16, color: colors.White}
	l.Common = newCommon(l)
	return l
}

func (l *UILabel) FontSize(size float32) *UILabel { l.fontSize = size; return l }
func (l *UILabel) Family(family string) *UILabel  { l.family = family; return l }
func (l *UILabel) Color(c colors.Color) *UILabel  { l.color = c; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel     { l.wrap = enabled; return l }
func (l *UILabel) Text() string                   { return l.text }
func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.maxWidth = width
	if width > 0 {
		l.wrap = true
	}
	return l
}

func (l *UILabel) BindResources(res ui.Resources) {
	l.font, _ = res.Font(l.family)
}

func (l *UILabel) Constraint(c geom.Constraint) {
	l.base.Constraint(c)
	limit := l.inner().Max.W
	if geom.IsInf(limit) {
		limit = 0
	}
	if l.maxWidth > 0 && (limit == 0 || l.maxWidth < limit) {
		limit = l.maxWidth
	}
	l.content, l.layoutStr = l.measureText(limit)
}

func (l *UILabel) Size() geom.Size {
	l.mustBeConstrained(l)
	return l.outer(l.content)
}

func (l *UILabel) Draw(b *ui.DrawBuilder) {
	l.drawFrame(b, l.Size())
	origin := geom.Pt(l.padding.L, l.padding.T)
	b.Text(l.family, l.layoutStr, origin, l.fontSize, l.color)
}

func (l *UILabel) measure(s string) geom.Size {
	if l.font == nil {
		return geom.Size{}
	}
	_, bounds := l.font.Layout(s, l.fontSize)
	return bounds
}

// measureText lays the text out, breaking lines at spaces when wrapping is on
// and a width limit is known. Words longer than the limit stay on their own line.
func (l *UILabel) measureText(maxWidth float32) (geom.Size, string) {
	if l.text == "" || l.font == nil {
		return geom.Size{}, l.text
	}
	if !l.wrap || maxWidth <= 0 {
		return l.measure(l.text), l.text
	}

	spaceWidth := l.measure(" ").W
	var wrapped []string
	for _, raw := range strings.Split(l.text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := words[0]
		currentWidth := l.measure(current).W
		for _, word := range words[1:] {
			wordWidth := l.measure(word).W
			if currentWidth+spaceWidth+wordWidth > maxWidth {
				wrapped = append(wrapped, current)
				current, currentWidth = word, wordWidth
				continue
			}
			current += " " + word
			currentWidth += spaceWidth + wordWidth
		}
		wrapped = append(wrapped, current)
	}
	joined := strings.Join(wrapped, "\n")
	return l.measure(joined), joined
}
