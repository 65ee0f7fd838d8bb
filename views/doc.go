// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package views decides what each of the four routes shows: the closed
// banner, search bar, rules button, nominate button and the state of the
// nomination list.
package views
