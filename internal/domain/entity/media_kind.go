// Package entity contains the core business objects of the project.
package entity

// MediaKind is the discriminator tag for the media entry variants.
// Media entries are modelled as a single tagged struct rather than a
// type hierarchy; behaviour that differs per kind switches on this tag.
type MediaKind string

const (
	// MediaKindMovie indicates a feature film entry.
	MediaKindMovie MediaKind = "Movie"
	// MediaKindSeries indicates an episodic series entry.
	MediaKindSeries MediaKind = "Series"
	// MediaKindGame indicates a video game entry.
	MediaKindGame MediaKind = "Game"
)

// String returns the string representation of the MediaKind.
func (k MediaKind) String() string {
	return string(k)
}

// IsValid checks if the MediaKind is a valid value.
func (k MediaKind) IsValid() bool {
	switch k {
	case MediaKindMovie, MediaKindSeries, MediaKindGame:
		return true
	default:
		return false
	}
}
