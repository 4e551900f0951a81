package markup_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/engine/markup"
	"github.com/npillmayer-style/quipu/engine/node"
	"github.com/npillmayer-style/quipu/engine/style"
)

func TestParseSimpleTagTree(t *testing.T) {
	root, err := markup.Parse(`<vbox><paragraph>hello world</paragraph></vbox>`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Type != node.TypeVBox {
		t.Fatalf("expected root to be a vbox, got %v", root.Type)
	}
	p := root.FirstChild()
	if p == nil || p.Type != node.TypeParagraph {
		t.Fatalf("expected vbox's first child to be a paragraph, got %+v", p)
	}
	text := p.FirstChild()
	if text == nil || text.Type != node.TypeText || text.Text != "hello world" {
		t.Fatalf("expected a text leaf \"hello world\", got %+v", text)
	}
}

func TestParseSelfClosingTag(t *testing.T) {
	root, err := markup.Parse(`<image src="http://example.com/a.png"/>`)
	if err != nil {
		t.Fatal(err)
	}
	if root.Type != node.TypeImage {
		t.Fatalf("expected an image node, got %v", root.Type)
	}
	if root.Attrs["src"] != "http://example.com/a.png" {
		t.Errorf("expected raw src attribute to be recorded, got %q", root.Attrs["src"])
	}
}

func TestParseNumericStyleArithmetic(t *testing.T) {
	root, err := markup.Parse(`<vbox font-size=20><paragraph font-size+=4>x</paragraph></vbox>`)
	if err != nil {
		t.Fatal(err)
	}
	p := root.FirstChild()
	if p.Style.FontSize != 24 {
		t.Errorf("expected font-size 20+4=24, got %d", p.Style.FontSize)
	}
	if root.Style.FontSize != 20 {
		t.Errorf("expected vbox's own font-size to stay 20, got %d", root.Style.FontSize)
	}
}

func TestParseBooleanFlagToggle(t *testing.T) {
	root, err := markup.Parse(`<vbox bold=true><paragraph italic+=true>x</paragraph></vbox>`)
	if err != nil {
		t.Fatal(err)
	}
	p := root.FirstChild()
	if !p.Style.Flags.Has(style.FlagBold) {
		t.Errorf("expected bold to be inherited from the vbox")
	}
	if !p.Style.Flags.Has(style.FlagItalic) {
		t.Errorf("expected italic to be turned on by +=")
	}
	if root.Style.Flags.Has(style.FlagItalic) {
		t.Errorf("expected the vbox's own style not to pick up the paragraph's italic override")
	}
}

func TestParseClassAssignAndAppend(t *testing.T) {
	root, err := markup.Parse(`<vbox class="a b"><paragraph class+="c">x</paragraph></vbox>`)
	if err != nil {
		t.Fatal(err)
	}
	if !root.HasClass("a") || !root.HasClass("b") {
		t.Fatalf("expected vbox classes a,b, got %v", root.Classes)
	}
	p := root.FirstChild()
	if !p.HasClass("c") {
		t.Errorf("expected paragraph to have appended class c, got %v", p.Classes)
	}
}

func TestParseBackslashEscapes(t *testing.T) {
	root, err := markup.Parse(`<paragraph>a \< b \> c \\ d</paragraph>`)
	if err != nil {
		t.Fatal(err)
	}
	text := root.FirstChild()
	if text.Text != `a < b > c \ d` {
		t.Errorf("expected escapes to decode to literal characters, got %q", text.Text)
	}
}

func TestParseMismatchedTagsIsAnError(t *testing.T) {
	_, err := markup.Parse(`<vbox><paragraph>x</heading></vbox>`)
	if err == nil {
		t.Fatal("expected a mismatched-tag error")
	}
	perr, ok := err.(*markup.ParseError)
	if !ok {
		t.Fatalf("expected a *markup.ParseError, got %T", err)
	}
	if perr.Code != markup.ErrMismatchedTags {
		t.Errorf("expected ErrMismatchedTags, got %v", perr.Code)
	}
}

func TestParseUnknownTagIsAnError(t *testing.T) {
	_, err := markup.Parse(`<frobnicator></frobnicator>`)
	if err == nil {
		t.Fatal("expected an unknown-tag error")
	}
}

func TestParseColorAndAlpha(t *testing.T) {
	root, err := markup.Parse(`<vbox color=rgb(10,20,30)><paragraph color=alpha(0.5)>x</paragraph></vbox>`)
	if err != nil {
		t.Fatal(err)
	}
	p := root.FirstChild()
	if p.Style.Color.R != 10 || p.Style.Color.G != 20 || p.Style.Color.B != 30 {
		t.Errorf("expected alpha() to keep the inherited rgb, got %+v", p.Style.Color)
	}
	if p.Style.Color.A < 126 || p.Style.Color.A > 128 {
		t.Errorf("expected alpha ~127, got %d", p.Style.Color.A)
	}
}

func TestParseStyleRevertsAfterClosingTag(t *testing.T) {
	root, err := markup.Parse(`<vbox font-family="serif"><paragraph font-family="sans">x</paragraph><heading>y</heading></vbox>`)
	if err != nil {
		t.Fatal(err)
	}
	heading := root.FirstChild().NextSibling()
	if heading == nil || heading.Type != node.TypeHeading {
		t.Fatalf("expected a heading sibling, got %+v", heading)
	}
	if heading.Style.FontFamily != "serif" {
		t.Errorf("expected heading to see serif again after paragraph's sans scope closed, got %q", heading.Style.FontFamily)
	}
}
