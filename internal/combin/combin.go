// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package combin generates the k-element subsets of an n-element index set,
// trimmed from gonum.org/v1/gonum/stat/combin down to the one entry point
// composite's peak selection search actually needs.
package combin

// Combinations returns, in lexicographic order, every k-element subset of
// {0, ..., n-1} as a slice of ascending indices. n and k must be
// non-negative with n >= k, otherwise Combinations panics.
func Combinations(n, k int) [][]int {
	count := binomial(n, k)
	data := make([][]int, count)
	if len(data) == 0 {
		return data
	}
	data[0] = make([]int, k)
	for i := range data[0] {
		data[0][i] = i
	}
	for i := 1; i < count; i++ {
		next := make([]int, k)
		copy(next, data[i-1])
		nextCombination(next, n, k)
		data[i] = next
	}
	return data
}

// binomial returns C(n,k), the number of k-element subsets of an n-element
// set.
func binomial(n, k int) int {
	if n < 0 || k < 0 {
		panic("combin: negative input")
	}
	if n < k {
		panic("combin: n < k")
	}
	if k > n-k {
		k = n - k
	}
	b := 1
	for i := 1; i <= k; i++ {
		b = (n - k + i) * b / i
	}
	return b
}

// nextCombination advances s, the combination following s in lexicographic
// order, overwriting s in place.
func nextCombination(s []int, n, k int) {
	for j := k - 1; j >= 0; j-- {
		if s[j] == n+j-k {
			continue
		}
		s[j]++
		for l := j + 1; l < k; l++ {
			s[l] = s[j] + l - j
		}
		break
	}
}
