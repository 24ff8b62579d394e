package components

const (
	ColumnContentWidth = 26 // inside the column padding, one card wide
	ColumnWidth        = 30 // ColumnContentWidth + padding(2) + border(2)
	CardContentWidth   = 24 // inside the card border
	CardHeight         = 5  // three content lines plus the border

	columnOverhead = 5 // border(2) + header(1) + indicators(2)
)
