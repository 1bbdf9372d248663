package interval

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		in      []Span
		epsilon float64
		want    []Span
	}{
		{
			"empty", nil, DefaultEpsilon, nil,
		},
		{
			"single", []Span{{1, 2}}, DefaultEpsilon, []Span{{1, 2}},
		},
		{
			"overlap and near adjacency",
			[]Span{{1.0, 2.0}, {1.9, 2.1}, {3.0, 3.2}},
			DefaultEpsilon,
			[]Span{{1.0, 2.1}, {3.0, 3.2}},
		},
		{
			"unsorted input",
			[]Span{{5, 6}, {1, 2}, {1.5, 3}},
			DefaultEpsilon,
			[]Span{{1, 3}, {5, 6}},
		},
		{
			"contained span does not shrink current",
			[]Span{{1, 10}, {2, 3}},
			DefaultEpsilon,
			[]Span{{1, 10}},
		},
		{
			"wide epsilon bridges gaps",
			[]Span{{0, 1}, {1.4, 2}},
			0.5,
			[]Span{{0, 2}},
		},
		{
			"gap just beyond epsilon stays split",
			[]Span{{0, 1}, {1.002, 2}},
			DefaultEpsilon,
			[]Span{{0, 1}, {1.002, 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in, tt.epsilon)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge(%v, %v) = %v, want %v", tt.in, tt.epsilon, got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	in := []Span{{5, 6}, {1, 2}}
	Merge(in, DefaultEpsilon)
	if in[0].Start != 5 || in[1].Start != 1 {
		t.Errorf("input slice reordered: %v", in)
	}
}

func TestGaps(t *testing.T) {
	spans := []Span{{2, 4}, {6, 7}}

	got := Gaps(spans, 10, 1.0, 0)
	want := []Span{{0, 2}, {4, 6}, {7, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Gaps = %v, want %v", got, want)
	}
}

func TestGapsMinLengthAndCap(t *testing.T) {
	spans := []Span{{0.5, 4}, {4.2, 7}}

	// The 0.5s head gap and 0.2s inner gap fall below the minimum length.
	got := Gaps(spans, 10, 1.0, 0)
	want := []Span{{7, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Gaps = %v, want %v", got, want)
	}

	capped := Gaps([]Span{{2, 3}, {5, 6}, {8, 9}}, 12, 1.0, 2)
	if len(capped) != 2 {
		t.Errorf("expected 2 capped gaps, got %v", capped)
	}
}

func TestGapsFullyCovered(t *testing.T) {
	if got := Gaps([]Span{{0, 10}}, 10, 1.0, 5); len(got) != 0 {
		t.Errorf("expected no gaps, got %v", got)
	}
}
