package models

import (
	"errors"
	"fmt"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
)

// DefaultName is given to every person created from a fresh capture.
const DefaultName = "Unknown"

// Person is one album entry. Image references a blob in the image
// repository; the record never carries image bytes itself.
//
//easyjson:json
type Person struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// People is the ordered album. Order is display order.
//
//easyjson:json
type People []Person

var ErrMalformed = errors.New("malformed people payload")

// Clone returns a copy that shares no backing array with p.
func (p People) Clone() People {
	out := make(People, len(p))
	copy(out, p)
	return out
}

// Validate checks that every record has a non-empty, unique image reference.
func (p People) Validate() error {
	seen := make(map[string]int, len(p))
	for i, person := range p {
		if person.Image == "" {
			return fmt.Errorf("%w: record %d has no image reference", ErrMalformed, i)
		}
		if j, ok := seen[person.Image]; ok {
			return fmt.Errorf("%w: records %d and %d share image %q", ErrMalformed, j, i, person.Image)
		}
		seen[person.Image] = i
	}
	return nil
}

// EncodePeople serializes the album. A nil album encodes as an empty array.
func EncodePeople(p People) ([]byte, error) {
	w := jwriter.Writer{Flags: jwriter.NilSliceAsEmpty}
	p.MarshalEasyJSON(&w)
	return w.BuildBytes()
}

// DecodePeople parses a payload produced by EncodePeople.
func DecodePeople(data []byte) (People, error) {
	var p People
	if err := easyjson.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		p = People{}
	}
	return p, nil
}
