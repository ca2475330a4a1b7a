package domain

// CategoryKind discriminates the three shapes a resolved category can take.
type CategoryKind int

const (
	// CategoryUnknown means no signal survived the fallback chain.
	CategoryUnknown CategoryKind = iota
	// CategoryGeneric means the channel streams games but the specific title
	// could not be determined with confidence.
	CategoryGeneric
	// CategorySpecific carries a concrete category or game name.
	CategorySpecific
)

func (k CategoryKind) String() string {
	switch k {
	case CategorySpecific:
		return "specific"
	case CategoryGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ResolvedCategory is the tagged output of the category resolver. Name is only
// meaningful when Kind is CategorySpecific.
type ResolvedCategory struct {
	Kind CategoryKind `json:"kind"`
	Name string       `json:"name,omitempty"`
}

// Specific returns a resolved category carrying a concrete name.
func Specific(name string) ResolvedCategory {
	return ResolvedCategory{Kind: CategorySpecific, Name: name}
}

// Generic returns the low-confidence "streams games" category.
func Generic() ResolvedCategory {
	return ResolvedCategory{Kind: CategoryGeneric}
}

// Unknown returns the empty resolution.
func Unknown() ResolvedCategory {
	return ResolvedCategory{Kind: CategoryUnknown}
}

// Resolution is the full resolver output: the category plus whether the user
// was live when it was resolved.
type Resolution struct {
	Category ResolvedCategory `json:"category"`
	Live     bool             `json:"live"`
}
