package node

// typeNames is the markup tag name for each Type, shared by the markup
// parser (tag → Type) and the selector matcher (tag atom → Type) so the
// two never drift apart.
var typeNames = map[Type]string{
	TypeBasic:     "basic",
	TypeText:      "text",
	TypeHBox:      "hbox",
	TypeVBox:      "vbox",
	TypeParagraph: "paragraph",
	TypeHeading:   "heading",
	TypeHyperlink: "hyperlink",
	TypeImage:     "image",
	TypeUser:      "user",
}

var namesToType map[string]Type

func init() {
	namesToType = make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		namesToType[name] = t
	}
}

// TypeName returns t's markup tag name.
func TypeName(t Type) string {
	return typeNames[t]
}

// ParseType resolves a markup tag name to a Type.
func ParseType(name string) (Type, bool) {
	t, ok := namesToType[name]
	return t, ok
}
