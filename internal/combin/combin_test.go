// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package combin

import "testing"

func TestCombinationsOrderAndCount(t *testing.T) {
	got := Combinations(5, 2)
	want := [][]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Combinations(5,2)) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Errorf("Combinations(5,2)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCombinationsKEqualsN(t *testing.T) {
	got := Combinations(3, 3)
	if len(got) != 1 || got[0][0] != 0 || got[0][1] != 1 || got[0][2] != 2 {
		t.Errorf("Combinations(3,3) = %v, want [[0 1 2]]", got)
	}
}

func TestCombinationsKZero(t *testing.T) {
	got := Combinations(4, 0)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("Combinations(4,0) = %v, want a single empty subset", got)
	}
}
