package engine

// ObjectList is the ordered set of active objects with UID lookup.
// Iteration order is insertion order.
type ObjectList struct {
	objects []Object
	uidMap  map[uint64]Object
}

func NewObjectList() *ObjectList {
	return &ObjectList{
		objects: make([]Object, 0),
		uidMap:  make(map[uint64]Object),
	}
}

func (l *ObjectList) Add(o Object) {
	l.objects = append(l.objects, o)
	l.uidMap[o.Base().UID] = o
}

// Remove drops o and reports whether it was present.
func (l *ObjectList) Remove(o Object) bool {
	for i, obj := range l.objects {
		if obj == o {
			l.objects = append(l.objects[:i], l.objects[i+1:]...)
			delete(l.uidMap, o.Base().UID)
			return true
		}
	}
	return false
}

func (l *ObjectList) All() []Object {
	return l.objects
}

func (l *ObjectList) Len() int {
	return len(l.objects)
}

func (l *ObjectList) FindByUID(uid uint64) Object {
	return l.uidMap[uid]
}

func (l *ObjectList) FindByName(name string) Object {
	for _, o := range l.objects {
		if o.Base().Name == name {
			return o
		}
	}
	return nil
}

// FindAvatar returns the first object with the avatar capability.
func (l *ObjectList) FindAvatar() Avatar {
	for _, o := range l.objects {
		if a, ok := o.(Avatar); ok && a.IsAvatar() {
			return a
		}
	}
	return nil
}
