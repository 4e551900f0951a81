package markup

import (
	"strconv"
	"strings"

	"github.com/npillmayer-style/quipu/engine/style"
)

// ValueKind is the literal form an attribute value took in the source,
// per spec.md §6's value grammar.
type ValueKind uint8

const (
	ValBool ValueKind = iota
	ValInt
	ValFloat
	ValPercent
	ValString
	ValColor
	ValAlpha // alpha(n): a bare opacity, applied against a previously-set color
	ValURL
	ValKeyword
)

// Value is one parsed attribute value.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Num   float64 // Int/Float/Percent/Alpha
	Str   string  // String/Keyword/URL (URL holds the raw url(...) body)
	Color style.Color
}

// Raw renders v back to a string close to its source spelling, used as
// the literal stored in Node.Attrs (spec.md §3: "raw attribute values,
// for selector matching").
func (v Value) Raw() string {
	switch v.Kind {
	case ValBool:
		return strconv.FormatBool(v.Bool)
	case ValInt:
		return strconv.Itoa(int(v.Num))
	case ValFloat:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case ValPercent:
		return strconv.FormatFloat(v.Num, 'g', -1, 64) + "%"
	case ValString:
		return v.Str
	case ValColor:
		return v.Color.String()
	case ValAlpha:
		return "alpha(" + strconv.FormatFloat(v.Num, 'g', -1, 64) + ")"
	case ValURL:
		return "url(" + v.Str + ")"
	case ValKeyword:
		return v.Str
	}
	return ""
}

// parseValue consumes one attribute value starting at p.pos.
func (p *Parser) parseValue() (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Value{}, p.errorf(ErrAttribute, "expected an attribute value")
	}
	switch c := p.src[p.pos]; {
	case c == '"':
		return p.parseStringValue()
	case strings.HasPrefix(p.src[p.pos:], "rgba("):
		return p.parseFunctionalColor("rgba(", 4)
	case strings.HasPrefix(p.src[p.pos:], "rgb("):
		return p.parseFunctionalColor("rgb(", 3)
	case strings.HasPrefix(p.src[p.pos:], "alpha("):
		return p.parseAlpha()
	case strings.HasPrefix(p.src[p.pos:], "url("):
		return p.parseURL()
	case c == '#':
		return p.parseHexColor()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseKeywordOrBool()
	}
}

func (p *Parser) parseStringValue() (Value, error) {
	start := p.pos
	p.advance(1) // opening quote
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '"' {
			p.advance(1)
			return Value{Kind: ValString, Str: sb.String()}, nil
		}
		if c == '\\' && p.pos+1 < len(p.src) {
			next := p.src[p.pos+1]
			if next == '"' || next == '\\' {
				sb.WriteByte(next)
				p.advance(2)
				continue
			}
		}
		sb.WriteByte(c)
		p.advance(1)
	}
	p.pos = start
	return Value{}, p.errorf(ErrUnterminatedString, "unterminated string literal")
}

func (p *Parser) parseFunctionalColor(prefix string, nargs int) (Value, error) {
	body, err := p.consumeFunctionalBody(prefix)
	if err != nil {
		return Value{}, err
	}
	c, perr := style.ParseColor(prefix + body + ")")
	if perr != nil {
		return Value{}, p.errorf(ErrColorRange, perr.Error())
	}
	return Value{Kind: ValColor, Color: c}, nil
}

func (p *Parser) parseHexColor() (Value, error) {
	start := p.pos
	p.advance(1) // '#'
	for p.pos < len(p.src) && isHexDigit(p.src[p.pos]) {
		p.advance(1)
	}
	lit := p.src[start:p.pos]
	c, err := style.ParseColor(lit)
	if err != nil {
		return Value{}, p.errorf(ErrColorRange, err.Error())
	}
	return Value{Kind: ValColor, Color: c}, nil
}

// parseAlpha consumes "alpha(n)", a bare opacity literal that isn't a
// full color on its own — it is meant to be combined with whatever
// color is already current on the color attribute it's assigned to.
// go-colorful (and the rest of the pack) has no equivalent of this
// form, so it's parsed directly here rather than through
// style.ParseColor.
func (p *Parser) parseAlpha() (Value, error) {
	body, err := p.consumeFunctionalBody("alpha(")
	if err != nil {
		return Value{}, err
	}
	n, numErr := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if numErr != nil {
		return Value{}, p.errorf(ErrAttribute, "invalid alpha() argument %q", body)
	}
	return Value{Kind: ValAlpha, Num: n}, nil
}

func (p *Parser) parseURL() (Value, error) {
	body, err := p.consumeFunctionalBody("url(")
	if err != nil {
		return Value{}, err
	}
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "\"")
	body = strings.TrimSuffix(body, "\"")
	return Value{Kind: ValURL, Str: body}, nil
}

// consumeFunctionalBody advances past prefix, scans to the matching ')'
// (no nested parens in this grammar) and returns the text between them.
func (p *Parser) consumeFunctionalBody(prefix string) (string, error) {
	if !strings.HasPrefix(p.src[p.pos:], prefix) {
		return "", p.errorf(ErrToken, "expected %q", prefix)
	}
	p.advance(len(prefix))
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ')' {
		p.advance(1)
	}
	if p.pos >= len(p.src) {
		return "", p.errorf(ErrToken, "unterminated %q", prefix)
	}
	body := p.src[start:p.pos]
	p.advance(1) // ')'
	return body, nil
}

func (p *Parser) parseNumber() (Value, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.advance(1)
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.advance(1)
	}
	isFloat := false
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		isFloat = true
		p.advance(1)
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.advance(1)
		}
	}
	lit := p.src[start:p.pos]
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, p.errorf(ErrAttribute, "invalid number literal %q", lit)
	}
	if p.pos < len(p.src) && p.src[p.pos] == '%' {
		p.advance(1)
		return Value{Kind: ValPercent, Num: n}, nil
	}
	if isFloat {
		return Value{Kind: ValFloat, Num: n}, nil
	}
	return Value{Kind: ValInt, Num: n}, nil
}

func (p *Parser) parseKeywordOrBool() (Value, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.advance(1)
	}
	lit := p.src[start:p.pos]
	if lit == "" {
		return Value{}, p.errorf(ErrAttribute, "expected a value")
	}
	switch lit {
	case "true":
		return Value{Kind: ValBool, Bool: true}, nil
	case "false":
		return Value{Kind: ValBool, Bool: false}, nil
	}
	return Value{Kind: ValKeyword, Str: lit}, nil
}

func isDigit(c byte) bool     { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool  { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
