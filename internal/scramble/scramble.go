// Package scramble builds random cube scrambles.
package scramble

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Face is one of the six cube faces.
type Face byte

const (
	FaceU Face = 'U'
	FaceD Face = 'D'
	FaceL Face = 'L'
	FaceR Face = 'R'
	FaceF Face = 'F'
	FaceB Face = 'B'
)

// Axis groups two opposing faces.
type Axis int

const (
	AxisUD Axis = iota
	AxisLR
	AxisFB
)

var axisFaces = [3][2]Face{
	AxisUD: {FaceU, FaceD},
	AxisLR: {FaceL, FaceR},
	AxisFB: {FaceF, FaceB},
}

// Modifier is the turn amount applied to a face.
type Modifier int

const (
	Normal Modifier = iota
	Prime
	Double
)

// Move is a single scramble token, e.g. R'.
type Move struct {
	Face     Face
	Modifier Modifier
}

// Axis returns the axis pair of the move's face.
func (m Move) Axis() Axis {
	switch m.Face {
	case FaceU, FaceD:
		return AxisUD
	case FaceL, FaceR:
		return AxisLR
	default:
		return AxisFB
	}
}

func (m Move) String() string {
	switch m.Modifier {
	case Prime:
		return string(m.Face) + "'"
	case Double:
		return string(m.Face) + "2"
	default:
		return string(m.Face)
	}
}

// Scramble is an ordered sequence of moves.
type Scramble []Move

func (s Scramble) String() string {
	parts := make([]string, len(s))
	for i, m := range s {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Tokens returns the notation of each move.
func (s Scramble) Tokens() []string {
	tokens := make([]string, len(s))
	for i, m := range s {
		tokens[i] = m.String()
	}
	return tokens
}

// Generator produces random scrambles.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate returns length moves where no two consecutive moves share an
// axis. Draws landing on the previous axis are discarded and redrawn.
func (g *Generator) Generate(length int) Scramble {
	if length <= 0 {
		return Scramble{}
	}
	out := make(Scramble, 0, length)
	last := Axis(-1)
	for len(out) < length {
		axis := Axis(g.rnd.Intn(3))
		if axis == last {
			continue
		}
		face := axisFaces[axis][g.rnd.Intn(2)]
		mod := Modifier(g.rnd.Intn(3))
		out = append(out, Move{Face: face, Modifier: mod})
		last = axis
	}
	return out
}

// Parse reads a space separated scramble in standard notation.
func Parse(s string) (Scramble, error) {
	fields := strings.Fields(s)
	out := make(Scramble, 0, len(fields))
	for _, f := range fields {
		m, err := parseMove(f)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func parseMove(token string) (Move, error) {
	if len(token) == 0 || len(token) > 2 {
		return Move{}, fmt.Errorf("invalid move %q", token)
	}
	var m Move
	switch f := Face(strings.ToUpper(token[:1])[0]); f {
	case FaceU, FaceD, FaceL, FaceR, FaceF, FaceB:
		m.Face = f
	default:
		return Move{}, fmt.Errorf("invalid face in move %q", token)
	}
	if len(token) == 2 {
		switch token[1] {
		case '\'':
			m.Modifier = Prime
		case '2':
			m.Modifier = Double
		default:
			return Move{}, fmt.Errorf("invalid modifier in move %q", token)
		}
	}
	return m, nil
}

// Valid reports whether no two consecutive moves share an axis.
func (s Scramble) Valid() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Axis() == s[i-1].Axis() {
			return false
		}
	}
	return true
}
