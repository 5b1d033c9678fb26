package engine

// Ref is a non-owning reference to an object by UID. UIDs are never reused,
// so a Ref to a removed object resolves to nil instead of a stranger.
type Ref struct {
	UID uint64 // 0 = none
}

func RefTo(o Object) Ref {
	if o == nil {
		return Ref{}
	}
	return Ref{UID: o.Base().UID}
}

// Get resolves the reference, or returns nil if it is empty or the object
// is no longer in the list.
func (r Ref) Get(list *ObjectList) Object {
	if r.UID == 0 || list == nil {
		return nil
	}
	return list.FindByUID(r.UID)
}

// IsValid returns true if the reference points to something (UID != 0).
// It does not check that the object still exists.
func (r Ref) IsValid() bool {
	return r.UID != 0
}

func (r Ref) Refers(o Object) bool {
	return o != nil && r.UID != 0 && r.UID == o.Base().UID
}

func (r *Ref) Clear() {
	r.UID = 0
}
