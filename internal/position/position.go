package position

import (
	"bytes"
	"fmt"
)

// Location is the position of a node in the script source, as attached by the parser.
type Location struct {
	SourceName string `json:"sourceName,omitempty"`
	Line       int32  `json:"line"`   //1-indexed
	Column     int32  `json:"column"` //1-indexed
	Offset     int32  `json:"offset"` //0-indexed
}

func (loc Location) String() string {
	if loc.SourceName == "" {
		return fmt.Sprintf("%d:%d:", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d:", loc.SourceName, loc.Line, loc.Column)
}

func (loc Location) IsZero() bool {
	return loc == Location{}
}

type LocationStack []Location

func (stack LocationStack) String() string {
	buff := bytes.NewBuffer(nil)
	for _, loc := range stack {
		buff.WriteString(loc.String())
		buff.WriteRune(' ')
	}
	return buff.String()
}

type LocatedError interface {
	error
	MessageWithoutLocation() string
	LocationRange() Location
}
