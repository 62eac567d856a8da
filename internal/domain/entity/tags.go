package entity

// Layer is the collision category of a contact
type Layer string

const (
	LayerGround  Layer = "ground"
	LayerTrigger Layer = "trigger"
)

// Tag identifies what a trigger represents
type Tag string

// TagSet is a set of tags, e.g. the hazard tags
type TagSet map[Tag]struct{}

func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[Tag(t)] = struct{}{}
	}
	return s
}

func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}
