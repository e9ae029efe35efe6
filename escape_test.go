// seehuhn.de/go/fractal - parallel escape-time fractal rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fractal

import "testing"

func TestEscapeTime(t *testing.T) {
	cases := []struct {
		c       complex128
		limit   int
		n       int
		escaped bool
	}{
		{c: 2 + 2i, limit: 255, n: 0, escaped: true},
		{c: 2 + 2i, limit: 1, n: 0, escaped: true},
		{c: 0, limit: 1, escaped: false},
		{c: 0, limit: 255, escaped: false},
		{c: -1, limit: 255, escaped: false}, // 0, -1, 0, -1, ...
		{c: -2, limit: 255, escaped: false}, // |z|² == 4 is not an escape
		{c: 1, limit: 255, n: 2, escaped: true},
		{c: 1, limit: 2, escaped: false},
		{c: 3, limit: 0, escaped: false},
		{c: 0.5, limit: 255, n: 4, escaped: true},
		{c: 1i, limit: 255, escaped: false}, // i, -1+i, -i, -1+i, ...
	}
	for _, tc := range cases {
		n, escaped := EscapeTime(tc.c, tc.limit)
		if n != tc.n || escaped != tc.escaped {
			t.Errorf("EscapeTime(%v, %d) = (%d, %t), want (%d, %t)",
				tc.c, tc.limit, n, escaped, tc.n, tc.escaped)
		}
	}
}

func TestShade(t *testing.T) {
	if got := Shade(0, false); got != 0 {
		t.Errorf("bounded point: got %d, want 0", got)
	}
	if got := Shade(0, true); got != 255 {
		t.Errorf("immediate escape: got %d, want 255", got)
	}
	if got := Shade(MaxLimit-1, true); got != 1 {
		t.Errorf("late escape: got %d, want 1", got)
	}
}

func BenchmarkEscapeTime(b *testing.B) {
	for b.Loop() {
		EscapeTime(-0.75+0.1i, DefaultLimit)
	}
}
