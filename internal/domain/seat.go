package domain

import (
	"fmt"
	"strconv"
)

// seatLetters is the cabin layout: six seats per row, labelled A through F.
const seatLetters = "ABCDEF"

// Seat belongs to exactly one flight. Occupied is true iff a CONFIRMED
// booking currently claims the (flight, label) pair.
type Seat struct {
	ID       int64  `json:"id"`
	FlightID int64  `json:"flight_id"`
	Label    string `json:"label"`
	Row      int    `json:"row"`
	Letter   string `json:"letter"`
	Occupied bool   `json:"occupied"`
}

// GenerateSeats produces the deterministic seat set for a flight of the given
// capacity: row 1 seats A..F, then row 2, and so on. Idempotent by
// construction; run once at flight-creation time.
func GenerateSeats(totalSeats int) []Seat {
	seats := make([]Seat, 0, totalSeats)
	for i := 0; i < totalSeats; i++ {
		row := i/len(seatLetters) + 1
		letter := string(seatLetters[i%len(seatLetters)])
		seats = append(seats, Seat{
			Label:  strconv.Itoa(row) + letter,
			Row:    row,
			Letter: letter,
		})
	}
	return seats
}

// ParseSeatLabel splits a label like "12C" into row and letter.
func ParseSeatLabel(label string) (row int, letter string, err error) {
	if len(label) < 2 {
		return 0, "", fmt.Errorf("malformed seat label %q", label)
	}
	row, err = strconv.Atoi(label[:len(label)-1])
	if err != nil || row < 1 {
		return 0, "", fmt.Errorf("malformed seat label %q", label)
	}
	return row, label[len(label)-1:], nil
}

// AllocateSeat picks the seat a booking will claim.
//
// With a requested label it succeeds only if that exact seat exists and is
// unoccupied; there is no fallback to auto-assignment. Without one it picks
// the lowest available label, ordered by row then letter, so "1B" is chosen
// before "2A". The caller must hold the flight lock for the result to stay
// valid.
func AllocateSeat(seats []Seat, requested string) (string, error) {
	if requested != "" {
		for _, s := range seats {
			if s.Label == requested {
				if s.Occupied {
					return "", fmt.Errorf("seat %s: %w", requested, ErrSeatUnavailable)
				}
				return s.Label, nil
			}
		}
		return "", fmt.Errorf("seat %s: %w", requested, ErrSeatUnavailable)
	}

	best := -1
	for i, s := range seats {
		if s.Occupied {
			continue
		}
		if best == -1 || lessSeat(s, seats[best]) {
			best = i
		}
	}
	if best == -1 {
		return "", ErrNoSeatsAvailable
	}
	return seats[best].Label, nil
}

func lessSeat(a, b Seat) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Letter < b.Letter
}
