package render

// Glyphs is a set of tree-art pieces
type Glyphs struct {
	UpRight   string // last sibling
	VertRight string // sibling with more to come
	Horiz     string
	DownHoriz string // node with children
	HorizLeft string // joins the art to the command
	Vert      string // ancestor with more siblings to come
}

var UnicodeGlyphs = Glyphs{
	UpRight:   "╰",
	VertRight: "├",
	Horiz:     "─",
	DownHoriz: "┬",
	HorizLeft: "╴",
	Vert:      "│",
}

var ASCIIGlyphs = Glyphs{
	UpRight:   "`",
	VertRight: "|",
	Horiz:     "-",
	DownHoriz: "-",
	HorizLeft: "-",
	Vert:      "|",
}
