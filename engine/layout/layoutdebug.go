/*
Package layout (this file): a GraphViz dumper for the box tree, adapted
from the teacher's engine/frame/framedebug package. The DOM/CSS box tree
there carried PrincipalBox/AnonymousBox/TextBox and styled borders and
backgrounds; this box tree has one concrete type (box.Box) and no CSS
cascade, so the dump labels each node by its Owner's element type and its
computed axis sizes instead — still useful for spec.md §8's invariants,
since a mis-sized or mis-positioned box shows up immediately in the
rendered graph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package layout

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/node"
)

// ToGraphViz writes a DOT-format rendering of the box tree rooted at root,
// suitable as input for the graphviz `dot` tool. Every box becomes a node
// labelled with its owner's element type (or "line" for boxes
// synthesized during inline breaking, line and placement-group boxes
// alike), its resolved size and its position; every
// parent/child relationship becomes an edge.
func ToGraphViz(root *box.Box, w io.Writer) {
	header := template.Must(template.New("graph").Parse(graphHeadTmpl))
	if err := header.Execute(w, nil); err != nil {
		panic(err)
	}
	boxT := template.Must(template.New("box").Parse(boxNodeTmpl))
	edgeT := template.Must(template.New("edge").Parse(edgeTmpl))
	dict := make(map[*box.Box]string, 256)
	dumpBoxes(root, w, dict, boxT, edgeT)
	w.Write([]byte("}\n"))
}

func dumpBoxes(b *box.Box, w io.Writer, dict map[*box.Box]string, boxTmpl, edgeTmpl *template.Template) {
	dumpBox(b, w, dict, boxTmpl)
	for c := b.TreeNode().FirstChild(); c != nil; c = c.NextSibling() {
		child := box.AsBox(c)
		if child == nil {
			continue
		}
		dumpBoxes(child, w, dict, boxTmpl, edgeTmpl)
		dumpEdge(b, child, w, dict, edgeTmpl)
	}
}

func dumpBox(b *box.Box, w io.Writer, dict map[*box.Box]string, boxTmpl *template.Template) {
	name := nameOf(b, dict)
	fill := "lightblue3"
	if b.FirstElement >= 0 {
		fill = "grey95"
	}
	data := struct {
		Name, Label, Fill string
	}{Name: name, Label: boxLabel(b), Fill: fill}
	if err := boxTmpl.Execute(w, data); err != nil {
		panic(err)
	}
}

func dumpEdge(parent, child *box.Box, w io.Writer, dict map[*box.Box]string, edgeTmpl *template.Template) {
	data := struct{ N1, N2 string }{N1: nameOf(parent, dict), N2: nameOf(child, dict)}
	if err := edgeTmpl.Execute(w, data); err != nil {
		panic(err)
	}
}

func nameOf(b *box.Box, dict map[*box.Box]string) string {
	if name, ok := dict[b]; ok {
		return name
	}
	name := fmt.Sprintf("box%05d", len(dict)+1)
	dict[b] = name
	return name
}

// boxLabel describes a box for the GraphViz node label: owner element
// type (or a synthesized-box kind), resolved width/height, and position.
func boxLabel(b *box.Box) string {
	kind := "box"
	if n, ok := b.Owner.(*node.Node); ok {
		kind = node.TypeName(n.Type)
	} else if b.FirstElement >= 0 {
		kind = "line"
	}
	w, wok := b.Slot(box.Horizontal, box.SlotExtrinsic)
	h, hok := b.Slot(box.Vertical, box.SlotExtrinsic)
	size := "?x?"
	if wok && hok {
		size = fmt.Sprintf("%dx%d", w, h)
	}
	s := fmt.Sprintf("%s\\n%s @(%d,%d)", kind, size, b.Pos.X, b.Pos.Y)
	s = strings.Replace(s, "\"", "'", -1)
	return "\"" + s + "\""
}

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  node [fontname = "Helvetica" fontsize=11] ;
  edge [fontname = "Helvetica" fontsize=11] ;
`

const boxNodeTmpl = `{{ .Name }}	[ label={{ .Label }} shape=box style=filled fillcolor={{ .Fill }} ] ;
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`
