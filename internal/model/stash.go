package model

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned when a display index does not address a link.
var ErrInvalidIndex = errors.New("invalid index")

// Stash holds links in the order they were added (oldest first).
//
// Users address links by display index: 1-based, counting from the most
// recently added link. Display index i maps to position len-i.
type Stash struct {
	Links []Link
}

// NewStash creates a Stash from links, never leaving the slice nil.
func NewStash(links []Link) *Stash {
	if links == nil {
		links = []Link{}
	}
	return &Stash{Links: links}
}

// Len returns the number of links.
func (s *Stash) Len() int {
	return len(s.Links)
}

// Position converts a display index into a position in Links.
func (s *Stash) Position(index int) (int, error) {
	if index < 1 || index > len(s.Links) {
		return 0, fmt.Errorf("%w: %d (stash has %d links)", ErrInvalidIndex, index, len(s.Links))
	}
	return len(s.Links) - index, nil
}

// Get returns the link at the given display index.
func (s *Stash) Get(index int) (Link, error) {
	pos, err := s.Position(index)
	if err != nil {
		return Link{}, err
	}
	return s.Links[pos], nil
}

// Add appends a link, making it display index 1.
func (s *Stash) Add(link Link) {
	s.Links = append(s.Links, link)
}

// Remove deletes the link at the given display index and returns it.
func (s *Stash) Remove(index int) (Link, error) {
	pos, err := s.Position(index)
	if err != nil {
		return Link{}, err
	}

	removed := s.Links[pos]
	s.Links = append(s.Links[:pos], s.Links[pos+1:]...)
	return removed, nil
}

// Newest returns the links newest first, so element i has display index i+1.
func (s *Stash) Newest() []Link {
	result := make([]Link, len(s.Links))
	for i, link := range s.Links {
		result[len(s.Links)-1-i] = link
	}
	return result
}
