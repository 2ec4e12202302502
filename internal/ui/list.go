package ui

// ListCursor tracks the selected row and the first visible row of a paged
// list. It keeps WindowStart <= Selected < WindowStart+PageSize and
// 0 <= Selected < Count whenever Count > 0.
type ListCursor struct {
	Selected    int
	WindowStart int
	PageSize    int
	Count       int
}

func NewListCursor(pageSize, count int) ListCursor {
	if pageSize < 1 {
		pageSize = 1
	}
	return ListCursor{PageSize: pageSize, Count: max(count, 0)}
}

func (c *ListCursor) Down() {
	if c.Selected >= c.Count-1 {
		return
	}
	c.Selected++
	if c.Selected >= c.WindowStart+c.PageSize {
		c.WindowStart++
	}
}

func (c *ListCursor) Up() {
	if c.Selected <= 0 {
		return
	}
	c.Selected--
	if c.Selected < c.WindowStart {
		c.WindowStart--
	}
}

// SetCount adjusts the cursor after the list changed size, keeping the
// selection on the same row where possible.
func (c *ListCursor) SetCount(count int) {
	c.Count = max(count, 0)
	if c.Selected > c.Count-1 {
		c.Selected = max(c.Count-1, 0)
	}
	if c.WindowStart > c.Selected {
		c.WindowStart = c.Selected
	}
	if c.Selected >= c.WindowStart+c.PageSize {
		c.WindowStart = c.Selected - c.PageSize + 1
	}
}

// Visible returns the half-open index range of rows on screen.
func (c ListCursor) Visible() (start, end int) {
	return c.WindowStart, min(c.WindowStart+c.PageSize, c.Count)
}
