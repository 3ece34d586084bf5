package builder

// NameList is either a single Name or a sequence of Names. It is the type of
// every INPUTS/OUTPUTS argument.
type NameList interface {
	nameList()
}

// Name is a single key name.
type Name string

// Names is an ordered sequence of key names.
type Names []string

func (Name) nameList()  {}
func (Names) nameList() {}

// listify normalizes a NameList into a slice. A nil list yields nil.
func listify(list NameList) []string {
	switch v := list.(type) {
	case Name:
		return []string{string(v)}
	case Names:
		return []string(v)
	default:
		return nil
	}
}

// isEmpty reports whether list names nothing usable: nil, an empty sequence
// or an empty single name.
func isEmpty(list NameList) bool {
	switch v := list.(type) {
	case Name:
		return v == ""
	case Names:
		return len(v) == 0
	default:
		return true
	}
}
