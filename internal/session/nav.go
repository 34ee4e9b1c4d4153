package session

// Next moves the cursor down. At the last row the first press only flags
// the edge; the second wraps to the top.
func (s *Session) Next() {
	n := len(s.Rows(s.ActivePane()))
	if n == 0 {
		return
	}
	i := s.Cursor()
	switch {
	case i < 0:
		i = 0
	case i >= n-1:
		if s.hitBottom {
			s.hitBottom = false
			i = 0
		} else {
			s.hitBottom = true
			i = n - 1
		}
	default:
		s.hitBottom, s.hitTop = false, false
		i++
	}
	s.setCursor(i)
}

// Previous moves the cursor up, flagging the top edge before wrapping.
func (s *Session) Previous() {
	n := len(s.Rows(s.ActivePane()))
	if n == 0 {
		return
	}
	i := s.Cursor()
	switch {
	case i < 0:
		i = 0
	case i == 0:
		if s.hitTop {
			s.hitTop = false
			i = n - 1
		} else {
			s.hitTop = true
		}
	default:
		s.hitBottom, s.hitTop = false, false
		i = min(i, n) - 1
	}
	s.setCursor(i)
}

// NextFile moves to the next file row, skipping directories. It searches at
// most one lap and honours the same edge flash as Next.
func (s *Session) NextFile() {
	rows := s.Rows(s.ActivePane())
	n := len(rows)
	if n == 0 {
		return
	}
	idx := max(s.Cursor(), 0)
	s.hitTop = false

	for range n {
		if idx >= n-1 {
			if !s.hitBottom {
				s.hitBottom = true
				s.setCursor(n - 1)
				return
			}
			s.hitBottom = false
			idx = 0
		} else {
			idx++
		}
		if !rows[idx].IsDir {
			s.hitBottom = false
			s.setCursor(idx)
			return
		}
	}
}

// PreviousFile moves to the previous file row, skipping directories.
func (s *Session) PreviousFile() {
	rows := s.Rows(s.ActivePane())
	n := len(rows)
	if n == 0 {
		return
	}
	idx := min(max(s.Cursor(), 0), n-1)
	s.hitBottom = false

	for range n {
		if idx == 0 {
			if !s.hitTop {
				s.hitTop = true
				s.setCursor(0)
				return
			}
			s.hitTop = false
			idx = n - 1
		} else {
			idx--
		}
		if !rows[idx].IsDir {
			s.hitTop = false
			s.setCursor(idx)
			return
		}
	}
}

// JumpTop selects the first row.
func (s *Session) JumpTop() {
	if len(s.Rows(s.ActivePane())) > 0 {
		s.setCursor(0)
	}
	s.hitTop, s.hitBottom = false, false
}

// JumpBottom selects the last row.
func (s *Session) JumpBottom() {
	if n := len(s.Rows(s.ActivePane())); n > 0 {
		s.setCursor(n - 1)
	}
	s.hitTop, s.hitBottom = false, false
}

// Page moves the cursor by delta rows, clamped to the list without wrapping.
func (s *Session) Page(delta int) {
	n := len(s.Rows(s.ActivePane()))
	if n == 0 {
		return
	}
	i := s.Cursor()
	if i < 0 {
		i = 0
	} else {
		i = min(max(i+delta, 0), n-1)
	}
	s.setCursor(i)
	s.hitTop, s.hitBottom = false, false
}

// AtEdge reports whether the last movement stopped at a boundary and the
// next one in that direction will wrap.
func (s *Session) AtEdge() bool { return s.hitTop || s.hitBottom }
