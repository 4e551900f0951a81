/*
Package style implements the styling properties attached to document
nodes: font selection, color and tint, text flags, justification, white-
space handling, line leading and hanging indent.

Styles cascade down the node tree the way TeX scans grouped parameter
assignments: a styled element pushes a new group of overrides, descendants
see them, and leaving the subtree pops the group again, exposing whatever
was visible before. Registers is that grouped-parameter mechanism, adapted
from a typesetting-register implementation that did the same thing for
language/script/hyphenation parameters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

// Property identifies one scoped, inheritable style property.
type Property int

//go:generate stringer -type=Property
const (
	none Property = iota
	PFontFamily
	PFontSize
	PColor
	PTint
	PJustification
	PWhiteSpace
	PWrapMode
	PLeading
	PHangingIndent
	PFlags
	pStopper
)

// propertyGroup holds the overrides pushed by entering one styled subtree.
type propertyGroup struct {
	params map[Property]interface{}
	level  int
	next   *propertyGroup
}

// Registers is a stack of scoped property overrides, queried from the
// innermost (most specific) group outward to the document-wide base.
type Registers struct {
	base       [pStopper]interface{}
	groups     *propertyGroup
	groupLevel int
}

// NewRegisters returns a Registers set to the document's default styling.
func NewRegisters() *Registers {
	regs := &Registers{}
	initDefaults(&regs.base)
	return regs
}

func initDefaults(p *[pStopper]interface{}) {
	p[PFontFamily] = "serif"
	p[PFontSize] = 12
	p[PColor] = Black
	p[PTint] = float64(0)
	p[PJustification] = JustifyLeft
	p[PWhiteSpace] = WhiteSpaceNormal
	p[PWrapMode] = WrapNormal
	p[PLeading] = 0
	p[PHangingIndent] = 0
	p[PFlags] = Flags(0)
}

// BeginGroup opens a new nested scope; overrides pushed afterwards are
// visible until the matching EndGroup.
func (regs *Registers) BeginGroup() {
	regs.groupLevel++
}

// EndGroup closes the innermost scope, discarding any overrides pushed
// since the matching BeginGroup.
func (regs *Registers) EndGroup() {
	if regs.groupLevel == 0 {
		return
	}
	if regs.groups != nil && regs.groups.level == regs.groupLevel {
		regs.groups = regs.groups.next
	}
	regs.groupLevel--
}

// Push assigns a property value in the current scope. At group level 0
// this overwrites the document-wide base.
func (regs *Registers) Push(key Property, value interface{}) {
	if regs.groupLevel == 0 {
		regs.base[key] = value
		return
	}
	g := regs.groups
	if g == nil || g.level < regs.groupLevel {
		g = &propertyGroup{
			params: make(map[Property]interface{}),
			level:  regs.groupLevel,
			next:   regs.groups,
		}
		regs.groups = g
	}
	g.params[key] = value
}

// Get resolves a property, walking outward from the innermost scope to the
// document-wide base.
func (regs *Registers) Get(key Property) interface{} {
	if key <= none || key >= pStopper {
		panic("style: property key outside the valid range")
	}
	for g := regs.groups; g != nil; g = g.next {
		if v, ok := g.params[key]; ok {
			return v
		}
	}
	return regs.base[key]
}

// S returns a property's value as a string.
func (regs *Registers) S(key Property) string {
	return regs.Get(key).(string)
}

// N returns a property's value as an int.
func (regs *Registers) N(key Property) int {
	return regs.Get(key).(int)
}

// F returns a property's value as Flags.
func (regs *Registers) F(key Property) Flags {
	return regs.Get(key).(Flags)
}
