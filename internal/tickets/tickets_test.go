package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []string
	}{
		"empty text": {
			text: "",
			want: nil,
		},
		"no tickets": {
			text: "Fix typo in README",
			want: nil,
		},
		"single ticket": {
			text: "ABC-123 add login",
			want: []string{"ABC-123"},
		},
		"duplicate ticket collapses": {
			text: "fix ABC-1 and ABC-1 again",
			want: []string{"ABC-1"},
		},
		"multiple distinct tickets": {
			text: "PROJ-7: merge work from CORE-42 and PROJ-8",
			want: []string{"PROJ-7", "CORE-42", "PROJ-8"},
		},
		"lowercase prefix ignored": {
			text: "abc-123 is not a ticket",
			want: nil,
		},
		"missing digits ignored": {
			text: "ABC- and ABC",
			want: nil,
		},
		"embedded in branch path": {
			text: "feature/ABC-99-fix",
			want: []string{"ABC-99"},
		},
		"name-rev suffix": {
			text: "remotes/origin/bugfix/OPS-314~3",
			want: []string{"OPS-314"},
		},
		"mixed case prefix keeps uppercase tail": {
			text: "xyABC-5",
			want: []string{"ABC-5"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Extract(tt.text)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	text := "DEF-2 then ABC-1, ABC-1, DEF-2"
	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, first, second)
	assert.ElementsMatch(t, []string{"ABC-1", "DEF-2"}, first)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		lists [][]string
		want  []string
	}{
		"no lists": {
			lists: nil,
			want:  nil,
		},
		"branch and subject overlap": {
			lists: [][]string{{"DEF-1"}, {"ABC-99", "DEF-1"}},
			want:  []string{"ABC-99", "DEF-1"},
		},
		"nil list contributes nothing": {
			lists: [][]string{{"ABC-1"}, nil},
			want:  []string{"ABC-1"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.ElementsMatch(t, tt.want, Merge(tt.lists...))
		})
	}
}
