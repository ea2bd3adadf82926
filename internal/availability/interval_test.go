package availability

import (
	"testing"
)

func tod(h, m int) TimeOfDay { return NewTimeOfDay(h, m) }

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "08:00", want: tod(8, 0)},
		{input: "9:30", want: tod(9, 30)},
		{input: "23:59", want: tod(23, 59)},
		{input: "00:00", want: tod(0, 0)},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "12", wantErr: true},
		{input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := tod(8, 5).String(); s != "08:05" {
		t.Errorf("String() = %q, want %q", s, "08:05")
	}
}

func TestIntervalSubtract(t *testing.T) {
	base := Interval{Start: tod(8, 0), End: tod(18, 0)}

	tests := []struct {
		name string
		busy Interval
		want []Interval
	}{
		{
			name: "no overlap before",
			busy: Interval{Start: tod(6, 0), End: tod(8, 0)},
			want: []Interval{base},
		},
		{
			name: "no overlap after",
			busy: Interval{Start: tod(18, 0), End: tod(20, 0)},
			want: []Interval{base},
		},
		{
			name: "full cover",
			busy: Interval{Start: tod(7, 0), End: tod(19, 0)},
			want: nil,
		},
		{
			name: "exact cover",
			busy: base,
			want: nil,
		},
		{
			name: "interior split",
			busy: Interval{Start: tod(12, 0), End: tod(13, 0)},
			want: []Interval{
				{Start: tod(8, 0), End: tod(12, 0)},
				{Start: tod(13, 0), End: tod(18, 0)},
			},
		},
		{
			name: "trims head",
			busy: Interval{Start: tod(7, 0), End: tod(10, 0)},
			want: []Interval{{Start: tod(10, 0), End: tod(18, 0)}},
		},
		{
			name: "trims head from exact start",
			busy: Interval{Start: tod(8, 0), End: tod(10, 0)},
			want: []Interval{{Start: tod(10, 0), End: tod(18, 0)}},
		},
		{
			name: "trims tail",
			busy: Interval{Start: tod(16, 0), End: tod(19, 0)},
			want: []Interval{{Start: tod(8, 0), End: tod(16, 0)}},
		},
		{
			name: "trims tail to exact end",
			busy: Interval{Start: tod(16, 0), End: tod(18, 0)},
			want: []Interval{{Start: tod(8, 0), End: tod(16, 0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Subtract(tt.busy)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("piece %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Subtraction is total: the remaining pieces always account for exactly
// the base duration minus the overlapped duration, and every piece is a
// valid sub-interval of the base.
func TestSubtractTotality(t *testing.T) {
	base := Interval{Start: tod(9, 0), End: tod(17, 0)}

	busies := []Interval{
		{Start: tod(7, 0), End: tod(8, 0)},
		{Start: tod(7, 0), End: tod(9, 30)},
		{Start: tod(9, 0), End: tod(10, 0)},
		{Start: tod(11, 0), End: tod(12, 15)},
		{Start: tod(16, 30), End: tod(18, 0)},
		{Start: tod(8, 0), End: tod(18, 0)},
		{Start: tod(17, 0), End: tod(19, 0)},
	}

	for _, busy := range busies {
		overlap := 0
		if base.Overlaps(busy) {
			lo, hi := max(int(base.Start), int(busy.Start)), min(int(base.End), int(busy.End))
			overlap = hi - lo
		}

		remaining := 0
		for _, piece := range base.Subtract(busy) {
			if !piece.Valid() {
				t.Errorf("Subtract(%v): invalid piece %v", busy, piece)
			}
			if piece.Start < base.Start || piece.End > base.End {
				t.Errorf("Subtract(%v): piece %v escapes base %v", busy, piece, base)
			}
			remaining += piece.Minutes()
		}

		if remaining != base.Minutes()-overlap {
			t.Errorf("Subtract(%v): remaining %d min, want %d", busy, remaining, base.Minutes()-overlap)
		}
	}
}

// Subtracting the same busy interval twice changes nothing: the second
// pass finds no overlap with the remaining pieces.
func TestSubtractIdempotent(t *testing.T) {
	base := Interval{Start: tod(8, 0), End: tod(18, 0)}
	busy := Interval{Start: tod(12, 0), End: tod(13, 0)}

	once := subtractAll(base, []Interval{busy})
	twice := subtractAll(base, []Interval{busy, busy})

	if len(once) != len(twice) {
		t.Fatalf("once=%v twice=%v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("piece %d differs: %v vs %v", i, once[i], twice[i])
		}
	}
}
