package region

// Union sets r to a ∪ b. r may be a or b.
func (r *Region) Union(a, b *Region) error {
	if a == b {
		return r.Copy(a)
	}
	if a.NumRects() == 0 {
		if a.broken {
			r.setBroken()
			return ErrBroken
		}
		return r.Copy(b)
	}
	if b.NumRects() == 0 {
		if b.broken {
			r.setBroken()
			return ErrBroken
		}
		return r.Copy(a)
	}
	if a.data == nil && a.extents.Contains(b.extents) {
		return r.Copy(a)
	}
	if b.data == nil && b.extents.Contains(a.extents) {
		return r.Copy(b)
	}

	// r may alias an operand, so the extents are taken before the sweep.
	ext := a.extents.Bound(b.extents)
	if _, err := r.op(a, b, opUnion); err != nil {
		return err
	}
	r.extents = ext
	return nil
}

// UnionRect sets r to src ∪ b.
func (r *Region) UnionRect(src *Region, b Box) error {
	if b.Empty() {
		return r.Copy(src)
	}
	box := Region{extents: b}
	return r.Union(src, &box)
}

// Intersect sets r to a ∩ b. r may be a or b.
func (r *Region) Intersect(a, b *Region) error {
	switch {
	case a.NumRects() == 0 || b.NumRects() == 0 || !a.extents.Overlaps(b.extents):
		if a.broken || b.broken {
			r.setBroken()
			return ErrBroken
		}
		r.setEmpty()
		return nil
	case a.data == nil && b.data == nil:
		r.Reset(a.extents.Intersect(b.extents))
		return nil
	case b.data == nil && b.extents.Contains(a.extents):
		return r.Copy(a)
	case a.data == nil && a.extents.Contains(b.extents):
		return r.Copy(b)
	case a == b:
		return r.Copy(a)
	}

	if _, err := r.op(a, b, opIntersect); err != nil {
		return err
	}
	r.setExtents()
	return nil
}

// IntersectRect sets r to src ∩ b.
func (r *Region) IntersectRect(src *Region, b Box) error {
	var box Region
	if !b.Empty() {
		box.extents = b
	}
	return r.Intersect(src, &box)
}

// Subtract sets r to m minus s. r may be m or s.
func (r *Region) Subtract(m, s *Region) error {
	if m.NumRects() == 0 || s.NumRects() == 0 || !m.extents.Overlaps(s.extents) {
		if s.broken {
			r.setBroken()
			return ErrBroken
		}
		return r.Copy(m)
	}
	if m == s {
		r.setEmpty()
		return nil
	}

	// The extents of r are only recomputed after the sweep because r may
	// be one of the operands.
	if _, err := r.op(m, s, opSubtract); err != nil {
		return err
	}
	r.setExtents()
	return nil
}

// Inverse sets r to the pixels of universe not in a.
func (r *Region) Inverse(a *Region, universe Box) error {
	if a.NumRects() == 0 || universe.Empty() || !universe.Overlaps(a.extents) {
		if a.broken {
			r.setBroken()
			return ErrBroken
		}
		r.Reset(universe)
		return nil
	}

	inv := Region{extents: universe}
	if _, err := r.op(&inv, a, opSubtract); err != nil {
		return err
	}
	r.setExtents()
	return nil
}
