package geom

import "testing"

func TestOpposite(t *testing.T) {
	tests := []struct {
		in, want Orientation
	}{
		{North, South},
		{South, North},
		{East, West},
		{West, East},
		{None, None},
	}
	for _, tt := range tests {
		if got := tt.in.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.in, got, tt.want)
		}
		if tt.in != None && tt.in.Opposite().Opposite() != tt.in {
			t.Errorf("Opposite is not symmetric for %v", tt.in)
		}
	}
}

func TestInward(t *testing.T) {
	tests := []struct {
		in   Orientation
		want Point
	}{
		{North, Pt(0, -1)},
		{East, Pt(-1, 0)},
		{South, Pt(0, 1)},
		{West, Pt(1, 0)},
		{None, Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := tt.in.Inward(); got != tt.want {
			t.Errorf("%v.Inward() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"north", North, false},
		{"N", North, false},
		{" East ", East, false},
		{"s", South, false},
		{"WEST", West, false},
		{"", None, false},
		{"up", None, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrientationText(t *testing.T) {
	var o Orientation
	if err := o.UnmarshalText([]byte("west")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, _ := o.MarshalText()
	if string(b) != "west" {
		t.Errorf("MarshalText = %q, want west", b)
	}
	if err := o.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		min1, max1, min2, max2 int
		want                   bool
	}{
		{"disjoint", 0, 3, 5, 8, false},
		{"adjacent", 0, 3, 4, 8, false},
		{"touching", 0, 4, 4, 8, true},
		{"contained", 0, 10, 2, 3, true},
		{"reversed order", 5, 8, 0, 5, true},
		{"single tiles equal", 2, 2, 2, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntervalsOverlap(tt.min1, tt.max1, tt.min2, tt.max2); got != tt.want {
				t.Errorf("IntervalsOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(Pt(0, 0), Pt(4, 4))
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same", a, true},
		{"x only", R(Pt(2, 10), Pt(6, 12)), false},
		{"y only", R(Pt(10, 2), Pt(12, 6)), false},
		{"corner", R(Pt(4, 4), Pt(8, 8)), true},
		{"beside", R(Pt(5, 0), Pt(9, 4)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps not symmetric")
			}
		})
	}
}

func TestRectDimensions(t *testing.T) {
	r := R(Pt(-2, 1), Pt(3, 4))
	if r.Width() != 6 || r.Height() != 4 {
		t.Errorf("Width/Height = %d/%d, want 6/4", r.Width(), r.Height())
	}
	if r.Size() != Pt(5, 3) {
		t.Errorf("Size = %v, want (5,3)", r.Size())
	}
	if !r.Contains(Pt(-2, 4)) || r.Contains(Pt(4, 4)) {
		t.Error("Contains gave wrong result on edges")
	}
	u := r.Union(R(Pt(10, -5), Pt(11, 0)))
	if u != R(Pt(-2, -5), Pt(11, 4)) {
		t.Errorf("Union = %v", u)
	}
}
