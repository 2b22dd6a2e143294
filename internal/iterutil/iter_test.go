package iterutil_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ZombieAlex/za-utils/internal/iterutil"
)

func pairs(kv ...any) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := 0; i < len(kv); i += 2 {
			if !yield(kv[i].(int), kv[i+1].(string)) {
				return
			}
		}
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	got := slices.Collect(iterutil.Keys(pairs(1, "a", 2, "b", 3, "c")))
	if df := cmp.Diff([]int{1, 2, 3}, got); df != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", df)
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	got := slices.Collect(iterutil.Values(pairs(1, "a", 2, "b", 3, "c")))
	if df := cmp.Diff([]string{"a", "b", "c"}, got); df != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", df)
	}
}

func TestEarlyStop(t *testing.T) {
	t.Parallel()

	var got []int
	for k := range iterutil.Keys(pairs(1, "a", 2, "b", 3, "c")) {
		got = append(got, k)
		break
	}
	if df := cmp.Diff([]int{1}, got); df != "" {
		t.Errorf("early-stop mismatch (-want +got):\n%s", df)
	}
}
