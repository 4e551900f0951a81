package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/npillmayer-style/quipu/engine/node"
	"github.com/npillmayer-style/quipu/engine/style"
)

// Parser turns markup source into a tree of engine/node.Node, cascading
// style overrides through a style.Registers scope that nests exactly the
// way tags nest in the source.
type Parser struct {
	src  string
	pos  int
	line int
	regs *style.Registers
}

// NewParser returns a Parser over src, ready to parse a single root tag.
func NewParser(src string) *Parser {
	return &Parser{src: src, line: 1, regs: style.NewRegisters()}
}

// Parse parses src as a single root tag (with nested children) and
// returns its node tree.
func Parse(src string) (*node.Node, error) {
	p := NewParser(src)
	p.skipSpace()
	root, err := p.parseTag()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf(ErrToken, "unexpected content after root tag")
	}
	return root, nil
}

// parseTag parses one "<name attr op value ...>children</name>" or
// self-closing "<name attr op value .../>" element, including its style
// cascade scope.
func (p *Parser) parseTag() (*node.Node, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		return nil, p.errorf(ErrToken, "expected '<'")
	}
	p.advance(1)
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	typ, ok := node.ParseType(name)
	if !ok {
		return nil, p.errorf(ErrTag, "unknown tag %q", name)
	}
	n := node.New(typ, defaultClassForType(typ))
	n.Attrs = make(map[string]string)

	p.regs.BeginGroup()
	selfClosing, err := p.parseAttrs(n, name)
	if err != nil {
		p.regs.EndGroup()
		return nil, err
	}
	n.Style = style.Resolve(p.regs)

	if selfClosing {
		p.regs.EndGroup()
		return n, nil
	}
	if err := p.parseChildren(n, name); err != nil {
		p.regs.EndGroup()
		return nil, err
	}
	p.regs.EndGroup()
	return n, nil
}

// parseAttrs consumes attributes up to the tag's closing '>' or '/>',
// applying each one to n and to the current style scope as it goes.
func (p *Parser) parseAttrs(n *node.Node, tagName string) (selfClosing bool, err error) {
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return false, p.errorf(ErrToken, "unexpected end of input inside tag <%s>", tagName)
		}
		if p.src[p.pos] == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '>' {
			p.advance(2)
			return true, nil
		}
		if p.src[p.pos] == '>' {
			p.advance(1)
			return false, nil
		}
		if err := p.parseAttr(n); err != nil {
			return false, err
		}
	}
}

// parseChildren consumes child tags and text runs until the matching
// closing tag for tagName.
func (p *Parser) parseChildren(n *node.Node, tagName string) error {
	for {
		if p.pos >= len(p.src) {
			return p.errorf(ErrMismatchedTags, "missing closing tag </%s>", tagName)
		}
		if strings.HasPrefix(p.src[p.pos:], "</") {
			closeStart := p.pos
			p.advance(2)
			closeName, err := p.readIdent()
			if err != nil {
				return err
			}
			p.skipSpace()
			if p.pos >= len(p.src) || p.src[p.pos] != '>' {
				return p.errorf(ErrToken, "expected '>' closing </%s>", closeName)
			}
			p.advance(1)
			if closeName != tagName {
				p.pos = closeStart
				return p.errorf(ErrMismatchedTags, "expected closing tag </%s>, found </%s>", tagName, closeName)
			}
			return nil
		}
		if p.src[p.pos] == '<' {
			child, err := p.parseTag()
			if err != nil {
				return err
			}
			n.AppendChild(child)
			continue
		}
		if text := p.parseText(); text != "" {
			textNode := node.New(node.TypeText, node.LayoutInline)
			textNode.Text = text
			textNode.Style = style.Resolve(p.regs)
			n.AppendChild(textNode)
		}
	}
}

// parseText reads a free-text run up to the next '<', decoding the
// markup language's backslash escapes for '<', '>' and '\' (spec.md §6,
// mandatory) and then standard HTML entities (golang.org/x/net/html's
// decoder, a convenience the spec itself doesn't require but every other
// text format in the pack supports).
func (p *Parser) parseText() string {
	var sb strings.Builder
	for p.pos < len(p.src) && p.src[p.pos] != '<' {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			switch next := p.src[p.pos+1]; next {
			case '<', '>', '\\':
				sb.WriteByte(next)
				p.advance(2)
				continue
			}
		}
		sb.WriteByte(c)
		p.advance(1)
	}
	return html.UnescapeString(sb.String())
}

// parseAttr parses one "name op value" attribute, records its raw
// literal on n.Attrs, and applies it to n or to the style scope.
func (p *Parser) parseAttr(n *node.Node) error {
	name, err := p.readIdent()
	if err != nil {
		return err
	}
	p.skipSpace()
	op, err := p.readOperator()
	if err != nil {
		return err
	}
	p.skipSpace()
	val, err := p.parseValue()
	if err != nil {
		return err
	}
	n.Attrs[name] = val.Raw()
	return p.applyAttr(n, name, op, val)
}

func defaultClassForType(t node.Type) node.LayoutClass {
	switch t {
	case node.TypeText, node.TypeHyperlink, node.TypeImage:
		return node.LayoutInline
	case node.TypeParagraph, node.TypeHeading:
		return node.LayoutInlineContainer
	default: // TypeBasic, TypeHBox, TypeVBox, TypeUser
		return node.LayoutBlock
	}
}

// applyAttr dispatches a parsed attribute to its effect: some name a
// style register, some mutate Node fields directly (class, id, display),
// and unrecognized names are left as plain Node.Attrs entries (already
// recorded by parseAttr) with no further effect.
func (p *Parser) applyAttr(n *node.Node, name, op string, val Value) error {
	switch name {
	case "class":
		return p.applyClass(n, op, val)
	case "id":
		return p.applyID(n, op, val)
	case "display":
		return p.applyDisplay(n, op, val)
	case "font-family":
		return p.applyStringProperty(style.PFontFamily, op, val)
	case "font-size":
		return p.applyIntProperty(style.PFontSize, op, val)
	case "leading":
		return p.applyIntProperty(style.PLeading, op, val)
	case "hanging-indent":
		return p.applyIntProperty(style.PHangingIndent, op, val)
	case "tint":
		return p.applyFloatProperty(style.PTint, op, val)
	case "color":
		return p.applyColor(op, val)
	case "justification":
		return p.applyJustification(op, val)
	case "white-space":
		return p.applyWhiteSpace(op, val)
	case "wrap":
		return p.applyWrap(op, val)
	case "bold", "italic", "underline", "strikethrough", "small-caps":
		return p.applyFlag(flagBits[name], op, val)
	default:
		return nil
	}
}

var flagBits = map[string]style.Flags{
	"bold":          style.FlagBold,
	"italic":        style.FlagItalic,
	"underline":     style.FlagUnderline,
	"strikethrough": style.FlagStrikethrough,
	"small-caps":    style.FlagSmallCaps,
}

var justificationKeywords = map[string]style.Justification{
	"left":    style.JustifyLeft,
	"right":   style.JustifyRight,
	"center":  style.JustifyCenter,
	"full":    style.JustifyFull,
	"justify": style.JustifyFull,
}

var whiteSpaceKeywords = map[string]style.WhiteSpaceMode{
	"normal": style.WhiteSpaceNormal,
	"pre":    style.WhiteSpacePre,
	"nowrap": style.WhiteSpaceNoWrap,
}

var wrapKeywords = map[string]style.WrapMode{
	"normal": style.WrapNormal,
	"none":   style.WrapNone,
}

func (p *Parser) applyClass(n *node.Node, op string, val Value) error {
	s, ok := stringFromValue(val)
	if !ok {
		return p.errorf(ErrAttribute, "expected a class name")
	}
	switch op {
	case "=", ":=":
		n.Classes = strings.Fields(s)
	case "+=":
		if !n.HasClass(s) {
			n.Classes = append(n.Classes, s)
		}
	case "-=":
		n.Classes = removeClass(n.Classes, s)
	default:
		return p.errorf(ErrAttribute, "operator %q not valid for class", op)
	}
	return nil
}

func (p *Parser) applyID(n *node.Node, op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for id", op)
	}
	s, ok := stringFromValue(val)
	if !ok {
		return p.errorf(ErrAttribute, "expected a string value for id")
	}
	n.ID = s
	return nil
}

func (p *Parser) applyDisplay(n *node.Node, op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for display", op)
	}
	if val.Kind != ValKeyword {
		return p.errorf(ErrAttribute, "expected a tag keyword for display")
	}
	t, ok := node.ParseType(val.Str)
	if !ok {
		return p.errorf(ErrTag, "unknown display type %q", val.Str)
	}
	n.Type = t
	n.Class = defaultClassForType(t)
	return nil
}

func (p *Parser) applyStringProperty(key style.Property, op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for a string attribute", op)
	}
	s, ok := stringFromValue(val)
	if !ok {
		return p.errorf(ErrAttribute, "expected a string or keyword value")
	}
	p.regs.Push(key, s)
	return nil
}

func (p *Parser) applyIntProperty(key style.Property, op string, val Value) error {
	n, ok := intFromValue(val)
	if !ok {
		return p.errorf(ErrAttribute, "expected a numeric value")
	}
	switch op {
	case "=", ":=":
		p.regs.Push(key, n)
	case "+=":
		p.regs.Push(key, p.regs.N(key)+n)
	case "-=":
		p.regs.Push(key, p.regs.N(key)-n)
	case "*=":
		p.regs.Push(key, p.regs.N(key)*n)
	case "/=":
		if n == 0 {
			return p.errorf(ErrAttribute, "division by zero")
		}
		p.regs.Push(key, p.regs.N(key)/n)
	default:
		return p.errorf(ErrAttribute, "unknown operator %q", op)
	}
	return nil
}

func (p *Parser) applyFloatProperty(key style.Property, op string, val Value) error {
	n, ok := floatFromValue(val)
	if !ok {
		return p.errorf(ErrAttribute, "expected a numeric value")
	}
	cur := p.regs.Get(key).(float64)
	switch op {
	case "=", ":=":
		cur = n
	case "+=":
		cur += n
	case "-=":
		cur -= n
	case "*=":
		cur *= n
	case "/=":
		if n == 0 {
			return p.errorf(ErrAttribute, "division by zero")
		}
		cur /= n
	default:
		return p.errorf(ErrAttribute, "unknown operator %q", op)
	}
	p.regs.Push(key, cur)
	return nil
}

// applyColor only accepts "=" / ":=" (it's not a numeric attribute), with
// two kinds of right-hand side: a full rgb()/rgba()/hex literal replaces
// the color outright, while alpha(n) keeps the current color's RGB and
// replaces only its alpha channel.
func (p *Parser) applyColor(op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for color", op)
	}
	switch val.Kind {
	case ValColor:
		p.regs.Push(style.PColor, val.Color)
		return nil
	case ValAlpha:
		cur := p.regs.Get(style.PColor).(style.Color)
		cur.A = uint8(clamp01(val.Num) * 255)
		p.regs.Push(style.PColor, cur)
		return nil
	}
	return p.errorf(ErrAttribute, "expected a color or alpha() value")
}

func (p *Parser) applyJustification(op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for justification", op)
	}
	if val.Kind != ValKeyword {
		return p.errorf(ErrAttribute, "expected a justification keyword")
	}
	j, ok := justificationKeywords[val.Str]
	if !ok {
		return p.errorf(ErrAttribute, "unknown justification %q", val.Str)
	}
	p.regs.Push(style.PJustification, j)
	return nil
}

func (p *Parser) applyWhiteSpace(op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for white-space", op)
	}
	if val.Kind != ValKeyword {
		return p.errorf(ErrAttribute, "expected a white-space keyword")
	}
	w, ok := whiteSpaceKeywords[val.Str]
	if !ok {
		return p.errorf(ErrAttribute, "unknown white-space value %q", val.Str)
	}
	p.regs.Push(style.PWhiteSpace, w)
	return nil
}

func (p *Parser) applyWrap(op string, val Value) error {
	if op != "=" && op != ":=" {
		return p.errorf(ErrAttribute, "operator %q not valid for wrap", op)
	}
	if val.Kind != ValKeyword {
		return p.errorf(ErrAttribute, "expected a wrap keyword")
	}
	w, ok := wrapKeywords[val.Str]
	if !ok {
		return p.errorf(ErrAttribute, "unknown wrap value %q", val.Str)
	}
	p.regs.Push(style.PWrapMode, w)
	return nil
}

// applyFlag turns a single boolean style-flag bit on, off, or to a
// literal value, bypassing style.Apply's all-or-nothing semantics
// (engine/style's Apply would clobber every other flag bit set so far
// in this scope) by reading, merging and pushing PFlags directly.
func (p *Parser) applyFlag(bit style.Flags, op string, val Value) error {
	cur := p.regs.F(style.PFlags)
	switch op {
	case "=", ":=":
		if val.Kind != ValBool {
			return p.errorf(ErrAttribute, "expected a boolean value")
		}
		if val.Bool {
			cur |= bit
		} else {
			cur &^= bit
		}
	case "+=":
		cur |= bit
	case "-=":
		cur &^= bit
	default:
		return p.errorf(ErrAttribute, "operator %q not valid for a boolean flag", op)
	}
	p.regs.Push(style.PFlags, cur)
	return nil
}

func stringFromValue(val Value) (string, bool) {
	switch val.Kind {
	case ValString, ValKeyword:
		return val.Str, true
	}
	return "", false
}

func intFromValue(val Value) (int, bool) {
	switch val.Kind {
	case ValInt, ValFloat, ValPercent:
		return int(val.Num), true
	}
	return 0, false
}

func floatFromValue(val Value) (float64, bool) {
	switch val.Kind {
	case ValInt, ValFloat:
		return val.Num, true
	case ValPercent:
		return val.Num / 100, true
	}
	return 0, false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func removeClass(classes []string, c string) []string {
	out := classes[:0:0]
	for _, cl := range classes {
		if cl != c {
			out = append(out, cl)
		}
	}
	return out
}
